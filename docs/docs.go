// Package docs registers the OpenAPI description served at /api/swagger.
// Regenerate with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/feed": {
            "get": {
                "description": "Posts and polls, newest first.",
                "produces": ["application/json"],
                "tags": ["feed"],
                "summary": "List the feed",
                "parameters": [
                    {"type": "integer", "description": "Page size (max 100)", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FeedPage"}}
                }
            }
        },
        "/posts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feed"],
                "summary": "Create a post",
                "parameters": [
                    {"description": "Post", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CreatePostRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Post"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls": {
            "post": {
                "description": "A question with 2 to 5 options.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feed"],
                "summary": "Create a poll",
                "parameters": [
                    {"description": "Poll", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CreatePollRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Poll"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/items/{id}/like": {
            "post": {
                "produces": ["application/json"],
                "tags": ["feed"],
                "summary": "Like or unlike a post or poll",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Post"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List the comment thread of a post",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CommentThread"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Add a top-level comment",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CommentThread"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/posts/{id}/comments/{commentId}/replies": {
            "post": {
                "description": "Replying to a comment that does not exist changes nothing and returns the thread with \"created\" set to null.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Reply to a comment at any depth",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Parent comment ID", "name": "commentId", "in": "path", "required": true},
                    {"description": "Reply", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.CommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CommentThread"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CommentThread"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/votes": {
            "post": {
                "description": "Each viewer votes once. Later votes return the poll unchanged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Vote on a poll",
                "parameters": [
                    {"type": "string", "description": "Poll ID", "name": "id", "in": "path", "required": true},
                    {"description": "Vote", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.VoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Poll"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/polls/{id}/tally": {
            "get": {
                "produces": ["application/json"],
                "tags": ["polls"],
                "summary": "Live poll shares",
                "parameters": [
                    {"type": "string", "description": "Poll ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PollTally"}}
                }
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current viewer profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update name and avatar",
                "parameters": [
                    {"description": "Profile", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/me/avatar": {
            "post": {
                "description": "The image is cropped to a square, scaled down and stored on the profile as a JPEG data URI.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Upload a profile picture",
                "parameters": [
                    {"type": "file", "description": "Image", "name": "avatar", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/stories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stories"],
                "summary": "List stories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Story"}}}
                }
            }
        },
        "/suggestions": {
            "post": {
                "description": "Asks the configured model for a post draft. Nothing in the feed changes, whatever the outcome.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["suggestions"],
                "summary": "Draft a post from an idea",
                "parameters": [
                    {"description": "Idea", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/server.SuggestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Suggestion"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "models.Comment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"},
                "content": {"type": "string"},
                "created_at": {"type": "string"},
                "time_ago": {"type": "string"},
                "replies": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}}
            }
        },
        "models.CommentThread": {
            "type": "object",
            "properties": {
                "post_id": {"type": "string"},
                "count": {"type": "integer"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}},
                "created": {"$ref": "#/definitions/models.Comment"}
            }
        },
        "models.Post": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "id": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"},
                "content": {"type": "string"},
                "image_url": {"type": "string"},
                "likes": {"type": "integer"},
                "liked": {"type": "boolean"},
                "comments_count": {"type": "integer"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.Comment"}},
                "created_at": {"type": "string"},
                "time_ago": {"type": "string"}
            }
        },
        "models.PollOption": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "votes": {"type": "integer"}
            }
        },
        "models.TallyEntry": {
            "type": "object",
            "properties": {
                "option_id": {"type": "string"},
                "votes": {"type": "integer"},
                "percentage": {"type": "integer"}
            }
        },
        "models.Poll": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "id": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"},
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/models.PollOption"}},
                "likes": {"type": "integer"},
                "liked": {"type": "boolean"},
                "comments_count": {"type": "integer"},
                "voted_option_id": {"type": "string"},
                "total_votes": {"type": "integer"},
                "tally": {"type": "array", "items": {"$ref": "#/definitions/models.TallyEntry"}},
                "created_at": {"type": "string"},
                "time_ago": {"type": "string"}
            }
        },
        "models.PollTally": {
            "type": "object",
            "properties": {
                "poll_id": {"type": "string"},
                "total_votes": {"type": "integer"},
                "voted_option_id": {"type": "string"},
                "tally": {"type": "array", "items": {"$ref": "#/definitions/models.TallyEntry"}}
            }
        },
        "models.FeedPage": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "models.Story": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"},
                "image_url": {"type": "string"},
                "created_at": {"type": "string"},
                "time_ago": {"type": "string"}
            }
        },
        "models.Suggestion": {
            "type": "object",
            "properties": {
                "text": {"type": "string"},
                "model": {"type": "string"},
                "cached": {"type": "boolean"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "server.CreatePostRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "server.CreatePollRequest": {
            "type": "object",
            "properties": {
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "server.CommentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"}
            }
        },
        "server.VoteRequest": {
            "type": "object",
            "properties": {
                "option_id": {"type": "string"}
            }
        },
        "server.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "server.SuggestionRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8375",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Irys World API",
	Description:      "Social feed with threaded comments, polls, stories and AI post drafts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
