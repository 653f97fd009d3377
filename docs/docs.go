// Package docs registers the OpenAPI description served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a student or teacher account",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange email and password for an access token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "List the caller's notifications",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "assignment|grade|achievement|reminder|system", "name": "type", "in": "query"},
                    {"type": "boolean", "description": "read state", "name": "isRead", "in": "query"},
                    {"type": "string", "description": "RFC 3339 or YYYY-MM-DD", "name": "dateFrom", "in": "query"},
                    {"type": "string", "description": "RFC 3339 or YYYY-MM-DD", "name": "dateTo", "in": "query"},
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "limit", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Send a notification to a user",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SendNotificationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/notifications/unread-count": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Count the caller's unread notifications",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/notifications/{id}/read": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Mark one of the caller's notifications as read",
                "parameters": [
                    {"type": "integer", "description": "notification id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/notifications/bulk": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Send many notifications; results follow request order",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.BulkNotificationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/notifications/preferences": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Update the caller's notification preferences; omitted toggles are kept",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdatePreferencesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/notifications/cleanup": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Delete read notifications older than daysOld days",
                "parameters": [
                    {"type": "integer", "description": "default 30", "name": "daysOld", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/content": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "List content with filters, sorting and pagination",
                "parameters": [
                    {"type": "integer", "name": "subjectId", "in": "query"},
                    {"type": "integer", "name": "gradeLevel", "in": "query"},
                    {"type": "string", "name": "contentType", "in": "query"},
                    {"type": "string", "name": "difficulty", "in": "query"},
                    {"type": "boolean", "name": "isPublished", "in": "query"},
                    {"type": "string", "description": "comma separated; all must match", "name": "tags", "in": "query"},
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "sortBy", "in": "query"},
                    {"type": "string", "name": "sortOrder", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Create content owned by the caller",
                "consumes": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateContentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/content/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Fetch content by id; counts a view",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Update content; creator or admin only",
                "consumes": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateContentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/content/{id}/like": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Add a like; returns the new like count",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/content/{id}/media": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["content"],
                "summary": "Upload a file and/or thumbnail for content",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "file", "name": "file", "in": "formData"},
                    {"type": "file", "name": "thumbnail", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["subjects"],
                "summary": "List subjects",
                "parameters": [
                    {"type": "boolean", "name": "activeOnly", "in": "query"},
                    {"type": "integer", "name": "gradeLevel", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/subjects/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["subjects"],
                "summary": "Fuzzy search subjects by English or Arabic name",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/subjects/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["subjects"],
                "summary": "Delete a subject that has no content",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "code": {"type": "string"},
                "data": {}
            }
        },
        "dto.RegisterInput": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "role": {"type": "string", "enum": ["student", "teacher"]}
            }
        },
        "dto.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "dto.SendNotificationRequest": {
            "type": "object",
            "required": ["message", "title", "type", "userId"],
            "properties": {
                "userId": {"type": "integer"},
                "title": {"type": "string", "maxLength": 255},
                "message": {"type": "string", "maxLength": 1000},
                "type": {"type": "string", "enum": ["assignment", "grade", "achievement", "reminder", "system"]},
                "referenceId": {"type": "integer"},
                "referenceType": {"type": "string", "maxLength": 50}
            }
        },
        "dto.BulkNotificationRequest": {
            "type": "object",
            "required": ["notifications"],
            "properties": {
                "notifications": {"type": "array", "items": {"$ref": "#/definitions/dto.SendNotificationRequest"}}
            }
        },
        "dto.UpdatePreferencesRequest": {
            "type": "object",
            "properties": {
                "emailNotifications": {"type": "boolean"},
                "pushNotifications": {"type": "boolean"},
                "assignmentReminders": {"type": "boolean"},
                "gradeNotifications": {"type": "boolean"},
                "achievementNotifications": {"type": "boolean"},
                "systemNotifications": {"type": "boolean"}
            }
        },
        "dto.CreateContentRequest": {
            "type": "object",
            "required": ["contentType", "difficulty", "gradeLevel", "subjectId", "title"],
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "contentType": {"type": "string", "enum": ["lesson", "video", "audio", "document", "quiz", "exercise", "game"]},
                "subjectId": {"type": "integer"},
                "gradeLevel": {"type": "integer", "minimum": 1, "maximum": 12},
                "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
                "tags": {"type": "array", "items": {"type": "string"}},
                "fileUrl": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "duration": {"type": "integer"},
                "isPublished": {"type": "boolean"}
            }
        },
        "dto.UpdateContentRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "contentType": {"type": "string"},
                "subjectId": {"type": "integer"},
                "gradeLevel": {"type": "integer"},
                "difficulty": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "fileUrl": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "duration": {"type": "integer"},
                "isPublished": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "EduPlatform API",
	Description:      "Notifications and educational content.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
