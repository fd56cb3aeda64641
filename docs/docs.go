// Package docs registers the Swagger document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Blacklist the bearer token until it expires",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout admin",
                "responses": {
                    "200": {"description": "Logout successful", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/form-options": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Wards, user types, statuses and the default draft",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Add-user form options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FormOptions"}}
                }
            }
        },
        "/users/forms": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Create a form session holding the default draft",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Open add-user form",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.FormView"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/forms/{formId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get add-user form",
                "parameters": [{"type": "string", "description": "Form ID", "name": "formId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FormView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Cancel add-user form",
                "parameters": [{"type": "string", "description": "Form ID", "name": "formId", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Send either text or flag for the named field. The error shown for that field is cleared.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update a draft field",
                "parameters": [
                    {"type": "string", "description": "Form ID", "name": "formId", "in": "path", "required": true},
                    {"description": "Field update", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.FieldUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FormView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/forms/{formId}/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Validates, waits out the submit delay, saves the user and closes the form",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Submit add-user form",
                "parameters": [{"type": "string", "description": "Form ID", "name": "formId", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/forms/{formId}/validate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Validate add-user form",
                "parameters": [{"type": "string", "description": "Form ID", "name": "formId", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.FormView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/tag": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "PNG QR code encoding the user id and ward, printed on bin labels",
                "produces": ["image/png"],
                "tags": ["users"],
                "summary": "User QR tag",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/services.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/services.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.FormView": {
            "type": "object",
            "properties": {
                "draft": {"$ref": "#/definitions/models.DraftUser"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}},
                "id": {"type": "string", "example": "6f1c2d4e-8a7b-4c3d-9e2f-1a2b3c4d5e6f"},
                "state": {"type": "string", "example": "idle"},
                "valid": {"type": "boolean"}
            }
        },
        "models.DraftUser": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "confirmPassword": {"type": "string"},
                "email": {"type": "string"},
                "emailUpdates": {"type": "boolean"},
                "emergencyContact": {"type": "string"},
                "houseNumber": {"type": "string"},
                "name": {"type": "string"},
                "notifications": {"type": "boolean"},
                "password": {"type": "string"},
                "phone": {"type": "string"},
                "smsAlerts": {"type": "boolean"},
                "status": {"type": "string"},
                "street": {"type": "string"},
                "userType": {"type": "string"},
                "ward": {"type": "string"}
            }
        },
        "models.FieldUpdate": {
            "type": "object",
            "required": ["field"],
            "properties": {
                "field": {"type": "string", "example": "name"},
                "flag": {"type": "boolean"},
                "text": {"type": "string", "example": "Sita Sharma"}
            }
        },
        "models.FormOptions": {
            "type": "object",
            "properties": {
                "defaults": {"$ref": "#/definitions/models.DraftUser"},
                "statuses": {"type": "array", "items": {"type": "string"}},
                "userTypes": {"type": "array", "items": {"type": "string"}},
                "wards": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.Preferences": {
            "type": "object",
            "properties": {
                "emailUpdates": {"type": "boolean"},
                "notifications": {"type": "boolean"},
                "smsAlerts": {"type": "boolean"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "binAssigned": {"type": "string", "example": "Not assigned"},
                "createdAt": {"type": "string"},
                "email": {"type": "string", "example": "sita@example.com"},
                "emergencyContact": {"type": "string", "example": "Not provided"},
                "houseNumber": {"type": "string", "example": "42"},
                "id": {"type": "string", "example": "USR-123456"},
                "joinDate": {"type": "string", "example": "2026-10-18"},
                "lastActive": {"type": "string", "example": "Just now"},
                "name": {"type": "string", "example": "Sita Sharma"},
                "phone": {"type": "string", "example": "123-456-7890"},
                "preferences": {"$ref": "#/definitions/models.Preferences"},
                "profileCompletion": {"type": "string", "example": "70%"},
                "reports": {"type": "integer", "example": 0},
                "status": {"type": "string", "example": "active"},
                "street": {"type": "string"},
                "userType": {"type": "string", "example": "Resident"},
                "verificationStatus": {"type": "string", "example": "Pending"},
                "ward": {"type": "string", "example": "Ward 12"}
            }
        },
        "services.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "WasteWise Admin API",
	Description:      "User administration for the municipal waste-management panel",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
