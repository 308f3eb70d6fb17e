// Package docs holds the Swagger document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Checks that the API is running and the database answers",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Health"
                ],
                "summary": "Health Check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/audits": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Get a paginated list of audit logs, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Audit"
                ],
                "summary": "List Audit Logs",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Items per page",
                        "name": "per_page",
                        "in": "query",
                        "default": 50
                    },
                    {
                        "type": "string",
                        "description": "Filter by actor",
                        "name": "actor_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by entity type",
                        "name": "entity",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by entity id",
                        "name": "entity_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by action",
                        "name": "action",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/jobs/status": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Worker counters and the last run of each scheduled job",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Jobs"
                ],
                "summary": "Get background job status",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/jobs.WorkerStats"
                        }
                    }
                }
            }
        },
        "/enrollments": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Enrollments"
                ],
                "summary": "List enrollments",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query",
                        "default": 1
                    },
                    {
                        "type": "integer",
                        "description": "Items per page",
                        "name": "per_page",
                        "in": "query",
                        "default": 20
                    },
                    {
                        "type": "string",
                        "description": "Filter by student",
                        "name": "student_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Filter by group",
                        "name": "group_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "ACTIVE, PAUSED or LEFT",
                        "name": "status",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Add a student to a group and compute the join-month charge",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Enrollments"
                ],
                "summary": "Enroll student",
                "parameters": [
                    {
                        "description": "Enrollment data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.EnrollRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/enrollments/transfer": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Move a student to another group and settle the transfer month",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Enrollments"
                ],
                "summary": "Transfer student",
                "parameters": [
                    {
                        "description": "Transfer data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.TransferRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/enrollments/{enrollment_id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Enrollments"
                ],
                "summary": "Get enrollment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Enrollment ID",
                        "name": "enrollment_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.EnrollmentResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "patch": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "ACTIVE, PAUSED or LEFT. LEFT records leave_date (default today). Charges are not changed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Enrollments"
                ],
                "summary": "Update enrollment status",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Enrollment ID",
                        "name": "enrollment_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Status",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.UpdateEnrollmentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.EnrollmentResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Enrollments"
                ],
                "summary": "Delete enrollment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Enrollment ID",
                        "name": "enrollment_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                }
            }
        },
        "/finance/charges": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Create or replace the join-month charge of a student in a group",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Compute initial charge",
                "parameters": [
                    {
                        "description": "Charge data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.ComputeChargeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.TuitionChargeResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/finance/payments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Store a payment and allocate it to open charges, oldest month first",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Record payment",
                "parameters": [
                    {
                        "description": "Payment data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.RecordPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/finance/expenses": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Record expense",
                "parameters": [
                    {
                        "description": "Expense data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.RecordExpenseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/models.Expense"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/finance/discount": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Set the discount of one monthly charge; the value is rounded to the nearest thousand",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Apply discount",
                "parameters": [
                    {
                        "description": "Discount data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/handlers.DiscountRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.TuitionChargeResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/finance/groups/{group_id}/charges": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Every student's charge in a group for one month, as JSON or an xlsx workbook",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Group charges",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Group ID",
                        "name": "group_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Month (1-12)",
                        "name": "month",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "xlsx for a spreadsheet",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.GroupChargesReport"
                        }
                    }
                }
            }
        },
        "/finance/debtors": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Students whose total debt is at least min_debt, largest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Debtors",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Minimum debt",
                        "name": "min_debt",
                        "in": "query",
                        "default": 0
                    },
                    {
                        "type": "string",
                        "description": "csv, xlsx or pdf",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    }
                }
            }
        },
        "/finance/students/{student_id}/summary": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Current month position of a student in their current group, with recent payments",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Student summary",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Student ID",
                        "name": "student_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.StudentSummary"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/finance/students/{student_id}/history": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Student history",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Student ID",
                        "name": "student_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.StudentHistory"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/finance/students/{student_id}/statement": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Statement of account as PDF",
                "produces": [
                    "application/pdf"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Student statement",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Student ID",
                        "name": "student_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/finance/balance": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Global balance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.GlobalBalance"
                        }
                    }
                }
            }
        },
        "/finance/overview": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Income, expenses and profit in a date range. Defaults to January 1st of this year until now.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Finance overview",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Start date (YYYY-MM-DD)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "End date, inclusive (YYYY-MM-DD)",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "CASH, CARD or TRANSFER",
                        "name": "method",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/models.FinanceOverview"
                        }
                    }
                }
            }
        },
        "/finance/reconcile": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Re-round legacy amounts and recompute statuses. dry_run reports without writing.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Finance"
                ],
                "summary": "Reconcile charges",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Report only",
                        "name": "dry_run",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/services.ReconcileReport"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ComputeChargeRequest": {
            "type": "object",
            "required": [
                "group_id",
                "join_date",
                "student_id"
            ],
            "properties": {
                "group_id": {
                    "type": "string"
                },
                "join_date": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                }
            }
        },
        "handlers.DiscountRequest": {
            "type": "object",
            "required": [
                "group_id",
                "month",
                "student_id",
                "year"
            ],
            "properties": {
                "discount": {
                    "type": "integer"
                },
                "group_id": {
                    "type": "string"
                },
                "month": {
                    "type": "integer",
                    "maximum": 12,
                    "minimum": 1
                },
                "student_id": {
                    "type": "string"
                },
                "year": {
                    "type": "integer",
                    "minimum": 2000
                }
            }
        },
        "handlers.EnrollRequest": {
            "type": "object",
            "required": [
                "group_id",
                "student_id"
            ],
            "properties": {
                "group_id": {
                    "type": "string"
                },
                "join_date": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                }
            }
        },
        "handlers.RecordExpenseRequest": {
            "type": "object",
            "required": [
                "method",
                "title"
            ],
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "category": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "paid_at": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                }
            }
        },
        "handlers.RecordPaymentRequest": {
            "type": "object",
            "required": [
                "method",
                "student_id"
            ],
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "comment": {
                    "type": "string"
                },
                "group_id": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "paid_at": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                }
            }
        },
        "handlers.TransferRequest": {
            "type": "object",
            "required": [
                "new_group_id",
                "old_group_id",
                "student_id"
            ],
            "properties": {
                "new_group_id": {
                    "type": "string"
                },
                "old_group_id": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                },
                "transfer_date": {
                    "type": "string"
                }
            }
        },
        "handlers.UpdateEnrollmentRequest": {
            "type": "object",
            "required": [
                "status"
            ],
            "properties": {
                "leave_date": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "jobs.JobRun": {
            "type": "object",
            "properties": {
                "duration": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "interval": {
                    "type": "string"
                },
                "last_run": {
                    "type": "string"
                }
            }
        },
        "jobs.WorkerStats": {
            "type": "object",
            "properties": {
                "active_jobs": {
                    "type": "integer"
                },
                "completed_jobs": {
                    "type": "integer"
                },
                "failed_jobs": {
                    "type": "integer"
                },
                "max_concurrent": {
                    "type": "integer"
                },
                "queue_length": {
                    "type": "integer"
                },
                "scheduled": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/jobs.JobRun"
                    }
                }
            }
        },
        "models.RefSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "phone": {
                    "type": "string"
                }
            }
        },
        "models.EnrollmentResponse": {
            "type": "object",
            "properties": {
                "group": {
                    "$ref": "#/definitions/models.RefSummary"
                },
                "id": {
                    "type": "string"
                },
                "join_date": {
                    "type": "string"
                },
                "leave_date": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "student": {
                    "$ref": "#/definitions/models.RefSummary"
                }
            }
        },
        "models.Expense": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "category": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "note": {
                    "type": "string"
                },
                "paid_at": {
                    "type": "string"
                },
                "recorded_by_id": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "models.TuitionChargeResponse": {
            "type": "object",
            "properties": {
                "amount_due": {
                    "type": "integer"
                },
                "charged_lessons": {
                    "type": "integer"
                },
                "discount": {
                    "type": "integer"
                },
                "effective_amount": {
                    "type": "integer"
                },
                "group_id": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "month": {
                    "type": "integer"
                },
                "planned_lessons": {
                    "type": "integer"
                },
                "status": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "models.GroupChargeLine": {
            "type": "object",
            "properties": {
                "amount_due": {
                    "type": "integer"
                },
                "charge_id": {
                    "type": "string"
                },
                "debt": {
                    "type": "integer"
                },
                "discount": {
                    "type": "integer"
                },
                "lessons": {
                    "type": "string"
                },
                "net": {
                    "type": "integer"
                },
                "paid": {
                    "type": "integer"
                },
                "status": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                },
                "student_name": {
                    "type": "string"
                }
            }
        },
        "models.GroupChargeTotals": {
            "type": "object",
            "properties": {
                "amount_due": {
                    "type": "integer"
                },
                "debt": {
                    "type": "integer"
                },
                "debt_rounded": {
                    "type": "integer"
                },
                "discount": {
                    "type": "integer"
                },
                "net": {
                    "type": "integer"
                },
                "net_rounded": {
                    "type": "integer"
                },
                "paid": {
                    "type": "integer"
                },
                "paid_rounded": {
                    "type": "integer"
                }
            }
        },
        "models.GroupChargesReport": {
            "type": "object",
            "properties": {
                "group_id": {
                    "type": "string"
                },
                "group_name": {
                    "type": "string"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.GroupChargeLine"
                    }
                },
                "month": {
                    "type": "integer"
                },
                "totals": {
                    "$ref": "#/definitions/models.GroupChargeTotals"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "models.MonthHistory": {
            "type": "object",
            "properties": {
                "amount_due": {
                    "type": "integer"
                },
                "charge_id": {
                    "type": "string"
                },
                "charged_lessons": {
                    "type": "integer"
                },
                "debt": {
                    "type": "integer"
                },
                "discount": {
                    "type": "integer"
                },
                "effective": {
                    "type": "integer"
                },
                "month": {
                    "type": "integer"
                },
                "paid": {
                    "type": "integer"
                },
                "planned_lessons": {
                    "type": "integer"
                },
                "status": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "models.GroupHistory": {
            "type": "object",
            "properties": {
                "debt": {
                    "type": "integer"
                },
                "debt_rounded": {
                    "type": "integer"
                },
                "effective": {
                    "type": "integer"
                },
                "group_id": {
                    "type": "string"
                },
                "group_name": {
                    "type": "string"
                },
                "months": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.MonthHistory"
                    }
                },
                "paid": {
                    "type": "integer"
                }
            }
        },
        "models.StudentHistory": {
            "type": "object",
            "properties": {
                "groups": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.GroupHistory"
                    }
                },
                "student_id": {
                    "type": "string"
                },
                "student_name": {
                    "type": "string"
                },
                "total_charged": {
                    "type": "integer"
                },
                "total_debt": {
                    "type": "integer"
                },
                "total_debt_rounded": {
                    "type": "integer"
                },
                "total_overpaid": {
                    "type": "integer"
                },
                "total_paid": {
                    "type": "integer"
                }
            }
        },
        "models.AllocationResponse": {
            "type": "object",
            "properties": {
                "amount": {
                    "type": "integer"
                },
                "charge_id": {
                    "type": "string"
                }
            }
        },
        "models.PaymentResponse": {
            "type": "object",
            "properties": {
                "allocated": {
                    "type": "integer"
                },
                "allocations": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.AllocationResponse"
                    }
                },
                "amount": {
                    "type": "integer"
                },
                "comment": {
                    "type": "string"
                },
                "group_id": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "method": {
                    "type": "string"
                },
                "paid_at": {
                    "type": "string"
                },
                "recorded_by_id": {
                    "type": "string"
                },
                "reference": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                },
                "unapplied": {
                    "type": "integer"
                }
            }
        },
        "models.StudentSummary": {
            "type": "object",
            "properties": {
                "charge": {
                    "type": "integer"
                },
                "charge_rounded": {
                    "type": "integer"
                },
                "debt": {
                    "type": "integer"
                },
                "debt_rounded": {
                    "type": "integer"
                },
                "group": {
                    "$ref": "#/definitions/models.RefSummary"
                },
                "lessons": {
                    "type": "string"
                },
                "month": {
                    "type": "integer"
                },
                "paid": {
                    "type": "integer"
                },
                "paid_rounded": {
                    "type": "integer"
                },
                "recent_payments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.PaymentResponse"
                    }
                },
                "status": {
                    "type": "string"
                },
                "student_id": {
                    "type": "string"
                },
                "student_name": {
                    "type": "string"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "models.GlobalBalance": {
            "type": "object",
            "properties": {
                "net_cash": {
                    "type": "integer"
                },
                "net_cash_rounded": {
                    "type": "integer"
                },
                "total_allocated": {
                    "type": "integer"
                },
                "total_charged": {
                    "type": "integer"
                },
                "total_debt": {
                    "type": "integer"
                },
                "total_debt_rounded": {
                    "type": "integer"
                },
                "total_overpaid": {
                    "type": "integer"
                },
                "total_expenses": {
                    "type": "integer"
                },
                "total_income": {
                    "type": "integer"
                }
            }
        },
        "models.FinanceOverview": {
            "type": "object",
            "properties": {
                "expense": {
                    "type": "integer"
                },
                "expense_rounded": {
                    "type": "integer"
                },
                "from": {
                    "type": "string"
                },
                "income": {
                    "type": "integer"
                },
                "income_rounded": {
                    "type": "integer"
                },
                "method": {
                    "type": "string"
                },
                "profit": {
                    "type": "integer"
                },
                "profit_rounded": {
                    "type": "integer"
                },
                "to": {
                    "type": "string"
                }
            }
        },
        "services.ReconcileReport": {
            "type": "object",
            "properties": {
                "changed_charges": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "dry_run": {
                    "type": "boolean"
                },
                "rounded": {
                    "type": "integer"
                },
                "scanned": {
                    "type": "integer"
                },
                "status_fixed": {
                    "type": "integer"
                },
                "updated": {
                    "type": "integer"
                }
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
	Schemes:          []string{"http"},
	Title:            "Tuition Billing API",
	Description:      "Monthly tuition charges, payments and financial reports for a learning center",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
