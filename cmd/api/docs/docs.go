// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "ApiKeyAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Refresh JWT Token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/quizzes": {"get": {"tags": ["quiz"], "summary": "List my quizzes", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/quizzes/generate": {"post": {"tags": ["quiz"], "summary": "Generate a quiz", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}, "502": {"description": "Bad Gateway"}}}},
        "/quizzes/{id}": {"get": {"tags": ["quiz"], "summary": "Get a quiz", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/quizzes/{id}/submit": {"post": {"tags": ["quiz"], "summary": "Submit answers", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}},
        "/attempts/{id}": {"get": {"tags": ["attempts"], "summary": "Get an attempt result", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/users/me": {
            "get": {"tags": ["users"], "summary": "Get My Profile", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["users"], "summary": "Update My Profile", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/me/avatar": {"put": {"tags": ["users"], "summary": "Upload avatar", "consumes": ["multipart/form-data"], "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "file", "name": "avatar", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/users/me/attempts": {"get": {"tags": ["users"], "summary": "My attempt history", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/themes/active": {"get": {"tags": ["themes"], "summary": "Active theme", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/themes/active/css": {"get": {"tags": ["themes"], "summary": "Active theme as CSS", "produces": ["text/css"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/dashboard": {"get": {"tags": ["admin"], "summary": "Admin dashboard", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/themes": {
            "get": {"tags": ["admin"], "summary": "List themes", "security": [{"ApiKeyAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Create theme", "security": [{"ApiKeyAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/admin/themes/{id}": {
            "get": {"tags": ["admin"], "summary": "Get theme", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["admin"], "summary": "Update theme", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["admin"], "summary": "Delete theme", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/admin/themes/{id}/activate": {"post": {"tags": ["admin"], "summary": "Activate theme", "security": [{"ApiKeyAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "MindSpark API",
	Description:      "AI generated multiple-choice quizzes with scoring, history and site theming.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
