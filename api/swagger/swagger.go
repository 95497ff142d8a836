package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Grading Engine API",
        "description": "Course grades, GPA, classification, standing and student numbers",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Grades", "description": "Course result processing"},
        {"name": "Students", "description": "GPA, CGPA, classification, standing and transcripts"},
        {"name": "Enrollments", "description": "Enrollment reports and student numbers"},
        {"name": "Courses", "description": "Assessment weights and final grades"},
        {"name": "Program Levels", "description": "Grading rule and classification tables"}
    ],
    "paths": {
        "/grades/process": {
            "post": {
                "tags": ["Grades"],
                "summary": "Grade a percentage mark and store the course result",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProcessGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Enrollment not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/gpa": {
            "get": {
                "tags": ["Students"],
                "summary": "Semester GPA of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/cgpa": {
            "get": {
                "tags": ["Students"],
                "summary": "Cumulative GPA of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/classification": {
            "get": {
                "tags": ["Students"],
                "summary": "Honours classification of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "programLevelId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/standing": {
            "get": {
                "tags": ["Students"],
                "summary": "Academic standing of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/report": {
            "get": {
                "tags": ["Students"],
                "summary": "Complete grade report of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "programLevelId", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/transcript": {
            "get": {
                "tags": ["Students"],
                "summary": "Download a transcript",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Transcript file", "schema": {"type": "file"}}
                }
            }
        },
        "/enrollments/{id}/report": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Semester grade report of an enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/enrollments/student-number": {
            "post": {
                "tags": ["Enrollments"],
                "summary": "Issue the student number of an enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentNumberRequest"}}
                ],
                "responses": {
                    "200": {"description": "Existing number", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Number issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Allocation contended", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}/assessments/weights": {
            "get": {
                "tags": ["Courses"],
                "summary": "Validate the assessment weights of a course",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}/final-grades": {
            "post": {
                "tags": ["Courses"],
                "summary": "Compute the final grade of a student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FinalGradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid weights", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}/final-grades/recalculate": {
            "post": {
                "tags": ["Courses"],
                "summary": "Queue final grade recalculation for every active enrollment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/RecalculationRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/program-levels/{id}/grading-rules": {
            "get": {
                "tags": ["Program Levels"],
                "summary": "Effective grading rules of a program level",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Program Levels"],
                "summary": "Replace the grading rules of a program level",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceRulesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid rule table", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/program-levels/{id}/classifications": {
            "get": {
                "tags": ["Program Levels"],
                "summary": "Configured classification bands of a program level",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Program Levels"],
                "summary": "Replace the classification bands of a program level",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReplaceClassificationsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ProcessGradeRequest": {
            "type": "object",
            "required": ["enrollment_id", "percentage_mark"],
            "properties": {
                "enrollment_id": {"type": "string"},
                "percentage_mark": {"type": "number"},
                "credit_units": {"type": "number"},
                "is_retake": {"type": "boolean"},
                "semester": {"type": "string"}
            }
        },
        "FinalGradeRequest": {
            "type": "object",
            "required": ["student_id"],
            "properties": {
                "student_id": {"type": "string"}
            }
        },
        "RecalculationRequest": {
            "type": "object",
            "properties": {
                "semester": {"type": "string"}
            }
        },
        "StudentNumberRequest": {
            "type": "object",
            "required": ["student_id", "course_id"],
            "properties": {
                "student_id": {"type": "string"},
                "course_id": {"type": "string"}
            }
        },
        "GradingRule": {
            "type": "object",
            "properties": {
                "min_percentage": {"type": "number"},
                "max_percentage": {"type": "number"},
                "letter_grade": {"type": "string"},
                "grade_point": {"type": "number"}
            }
        },
        "ReplaceRulesRequest": {
            "type": "object",
            "required": ["rules"],
            "properties": {
                "rules": {"type": "array", "items": {"$ref": "#/definitions/GradingRule"}}
            }
        },
        "AcademicClassification": {
            "type": "object",
            "properties": {
                "min_cgpa": {"type": "number"},
                "max_cgpa": {"type": "number"},
                "classification_label": {"type": "string"},
                "class_label": {"type": "string"},
                "order": {"type": "integer"}
            }
        },
        "ReplaceClassificationsRequest": {
            "type": "object",
            "required": ["classifications"],
            "properties": {
                "classifications": {"type": "array", "items": {"$ref": "#/definitions/AcademicClassification"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
