package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer_Text(t *testing.T) {
	ts := NewTextSanitizer()
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"  Lakeside Road ", "Lakeside Road"},
		{"<b>42</b>", "42"},
		{"Tom & Jerry Lane", "Tom & Jerry Lane"},
		{`<a href="javascript:alert(1)">Main</a> St`, "Main St"},
		{"<script>alert('x')</script>Ward office", "Ward office"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ts.Text(tt.in))
		})
	}
}

func TestTextSanitizer_Draft(t *testing.T) {
	ts := NewTextSanitizer()
	d := validDraft()
	d.Name = "  <i>Sita</i> Sharma "
	d.Email = " Sita@Example.COM "
	d.Password = " spaced secret "

	got := ts.Draft(d)

	assert.Equal(t, "Sita Sharma", got.Name)
	assert.Equal(t, "sita@example.com", got.Email)
	assert.Equal(t, " spaced secret ", got.Password)
	assert.Equal(t, "  <i>Sita</i> Sharma ", d.Name, "input draft is not modified")
}
