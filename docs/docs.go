// Package docs registers the Swagger document served at /swagger/. Keep it in step with the handler annotations.
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
        "/days/{day}/questions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Days"],
                "summary": "List a day's questions",
                "parameters": [
                    {"type": "integer", "description": "Day number", "name": "day", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/question.Question"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/days/{day}/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Days"],
                "summary": "Reset a day",
                "parameters": [
                    {"type": "integer", "description": "Day number", "name": "day", "in": "path", "required": true},
                    {"type": "boolean", "description": "Also clear the day's mistakes", "name": "mistakes", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ResetResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/export": {
            "get": {
                "description": "Downloads progress, mistakes, round states and round counters as one JSON envelope.",
                "produces": ["application/json"],
                "tags": ["Backup"],
                "summary": "Export state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Backup"}}
                }
            }
        },
        "/import": {
            "post": {
                "description": "Replaces every document present in the envelope. Nothing is written when a document fails validation.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Backup"],
                "summary": "Import state",
                "parameters": [
                    {"description": "Export envelope", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.Backup"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ImportResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/mistakes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Mistakes"],
                "summary": "List mistakes",
                "parameters": [
                    {"type": "integer", "description": "Only this day", "name": "day", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/service.MistakeEntry"}}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Mistakes"],
                "summary": "Clear mistakes",
                "parameters": [
                    {"type": "integer", "description": "Only this day", "name": "day", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ClearMistakesResponse"}}
                }
            }
        },
        "/practice/next": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "Next question",
                "parameters": [
                    {"description": "Session selection", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/api.PracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Result"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.WarningResponse"}}
                }
            }
        },
        "/practice/reshuffle": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "Reshuffle a round",
                "parameters": [
                    {"description": "Session selection", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/api.PracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Result"}}
                }
            }
        },
        "/practice/restart": {
            "post": {
                "description": "Starts a new shuffled round. Single-day sessions also forget the recorded answers of the day; mistakes are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "Restart a round",
                "parameters": [
                    {"description": "Session selection", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/api.PracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Result"}}
                }
            }
        },
        "/practice/submit": {
            "post": {
                "description": "Grades selection against the current question. In quiz mode send selections keyed by question id instead.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "Submit an answer",
                "parameters": [
                    {"description": "Session and selected letters", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.PracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Result"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.WarningResponse"}}
                }
            }
        },
        "/practice/view": {
            "post": {
                "description": "Returns the current question of a session, starting a new round when none is saved. Days default to the current day.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Practice"],
                "summary": "View a practice session",
                "parameters": [
                    {"description": "Session selection", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/api.PracticeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Result"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Progress"],
                "summary": "Get progress",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ProgressView"}}
                }
            }
        },
        "/progress/advance": {
            "post": {
                "description": "Refuses with 409 while today's batch has unanswered questions, unless force=true. Stops at the last day.",
                "produces": ["application/json"],
                "tags": ["Progress"],
                "summary": "Advance to the next day",
                "parameters": [
                    {"type": "boolean", "description": "Advance even if today is incomplete", "name": "force", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AdvanceResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.AdvanceResponse"}}
                }
            }
        },
        "/progress/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Progress"],
                "summary": "Reset progress",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ProgressView"}}
                }
            }
        }
    },
    "definitions": {
        "api.AdvanceResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "progress": {"$ref": "#/definitions/service.ProgressView"},
                "warning": {"type": "string", "example": "day_incomplete"}
            }
        },
        "api.ClearMistakesResponse": {
            "type": "object",
            "properties": {
                "cleared": {"type": "integer", "example": 4}
            }
        },
        "api.PracticeRequest": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"type": "integer"}, "example": [1]},
                "mode": {"type": "string", "example": "flashcard"},
                "selection": {"type": "array", "items": {"type": "string"}, "example": ["A", "C"]},
                "selections": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "api.WarningResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Please select at least one answer before submitting."},
                "view": {"$ref": "#/definitions/service.View"},
                "warning": {"type": "string", "example": "empty_selection"}
            }
        },
        "question.Question": {
            "type": "object",
            "properties": {
                "answers": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "integer"},
                "instruction": {"type": "string"},
                "options": {"type": "object", "additionalProperties": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "service.Backup": {
            "type": "object",
            "properties": {
                "documents": {"type": "object", "additionalProperties": {"type": "object"}},
                "exported_at": {"type": "string"},
                "id": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "service.FeedbackView": {
            "type": "object",
            "properties": {
                "chosen": {"type": "array", "items": {"type": "string"}},
                "correct": {"type": "array", "items": {"type": "string"}},
                "correct_texts": {"type": "array", "items": {"type": "string"}},
                "outcome": {"type": "string", "enum": ["correct", "partial", "wrong"]},
                "question_id": {"type": "integer"}
            }
        },
        "service.ImportResult": {
            "type": "object",
            "properties": {
                "documents": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "string"}
            }
        },
        "service.MistakeEntry": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "day": {"type": "integer"},
                "index": {"type": "integer"},
                "key": {"type": "string"},
                "question": {"$ref": "#/definitions/question.Question"}
            }
        },
        "service.ProgressView": {
            "type": "object",
            "properties": {
                "answered_today": {"type": "integer"},
                "batch_size": {"type": "integer"},
                "complete": {"type": "boolean"},
                "correct": {"type": "integer"},
                "day": {"type": "integer"},
                "days": {"type": "integer"},
                "max_day": {"type": "integer"},
                "mistakes": {"type": "integer"},
                "partial": {"type": "integer"},
                "remaining": {"type": "integer"},
                "rounds": {"type": "integer"},
                "total_answered": {"type": "integer"},
                "wrong": {"type": "integer"}
            }
        },
        "service.QuestionView": {
            "type": "object",
            "properties": {
                "answers": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "integer"},
                "instruction": {"type": "string"},
                "multi_select": {"type": "boolean"},
                "options": {"type": "object", "additionalProperties": {"type": "string"}},
                "question": {"type": "string"}
            }
        },
        "service.ResetResult": {
            "type": "object",
            "properties": {
                "answers_cleared": {"type": "integer"},
                "day": {"type": "integer"},
                "mistakes_cleared": {"type": "integer"}
            }
        },
        "service.Result": {
            "type": "object",
            "properties": {
                "feedback": {"type": "array", "items": {"$ref": "#/definitions/service.FeedbackView"}},
                "view": {"$ref": "#/definitions/service.View"}
            }
        },
        "service.SummaryView": {
            "type": "object",
            "properties": {
                "accuracy": {"type": "number"},
                "correct": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "service.View": {
            "type": "object",
            "properties": {
                "correct_count": {"type": "integer"},
                "current": {"$ref": "#/definitions/service.QuestionView"},
                "days": {"type": "array", "items": {"type": "integer"}},
                "key": {"type": "string"},
                "mode": {"type": "string", "enum": ["flashcard", "random", "quiz", "review", "mistakes"]},
                "phase": {"type": "string", "enum": ["presenting", "awaiting_ack", "round_complete"]},
                "position": {"type": "integer"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/service.QuestionView"}},
                "rounds": {"type": "integer"},
                "summary": {"$ref": "#/definitions/service.SummaryView"},
                "total": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Daycards API",
	Description:      "Day-batch multiple-choice study tool: practice 40 questions a day, track progress and replay mistakes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
