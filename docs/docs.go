// Package docs holds the OpenAPI document served under /swagger.
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
        "/tournaments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Create a tournament from a task list",
                "parameters": [
                    {"description": "Tasks in seeding order", "name": "input", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.createTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Tournament created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid body or task list", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/import": {
            "post": {
                "consumes": ["text/csv"],
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Create a tournament from a CSV task list",
                "responses": {
                    "201": {"description": "Tournament created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid task list", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "422": {"description": "CSV is missing required columns", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Get a tournament",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Tournament not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["tournaments"],
                "summary": "Discard a tournament",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Tournament not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/{tournamentID}/matches/{matchID}/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Mark a match as in progress",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "description": "Match ID, e.g. round-1-match-0", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Match is waiting for an opponent", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Tournament or match not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Match already completed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/{tournamentID}/matches/{matchID}/advance": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Record the winner of a match",
                "parameters": [
                    {"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "string", "description": "Match ID, e.g. round-1-match-0", "name": "matchID", "in": "path", "required": true},
                    {"description": "Winning task", "name": "input", "in": "body", "required": true,
                     "schema": {"$ref": "#/definitions/handlers.advanceMatchInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Winner is not in the match, or the match is not ready", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Tournament or match not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Match already completed", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/{tournamentID}/priorities": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tournaments"],
                "summary": "Tasks with their computed winner flag and priority",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Tournament not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/tournaments/{tournamentID}/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["export"],
                "summary": "Download the tournament as CSV",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "CSV export", "schema": {"type": "string"}},
                    "404": {"description": "Tournament not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "post": {
                "produces": ["application/json"],
                "tags": ["export"],
                "summary": "Upload the CSV export to object storage",
                "parameters": [{"type": "string", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Upload result with public location", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Tournament not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Storage rejected the upload", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Storage is not configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.advanceMatchInput": {
            "type": "object",
            "properties": {"winner_id": {"type": "string"}}
        },
        "handlers.createTournamentInput": {
            "type": "object",
            "properties": {"tasks": {"type": "array", "items": {"$ref": "#/definitions/models.Task"}}}
        },
        "models.Task": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "winner": {"type": "boolean"},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Task Battle API",
	Description:      "Single elimination brackets for task lists, with CSV import and export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
