package models

import "time"

// Frameworks is the closed set of test-automation frameworks a visitor can
// pick. The list is shared verbatim between the form and the endpoint.
var Frameworks = []string{
	"Cypress",
	"Selenium",
	"Robot Framework",
	"Playwright",
	"Jest",
	"Mocha",
	"TestCafe",
	"Puppeteer",
	"Appium",
	"Katalon Studio",
	"JUnit",
	"Capybara",
	"Sikuli",
	"TestNG",
	"Karate Framework",
}

var frameworkSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Frameworks))
	for _, f := range Frameworks {
		set[f] = struct{}{}
	}
	return set
}()

// IsFramework reports whether name belongs to the framework list.
func IsFramework(name string) bool {
	_, ok := frameworkSet[name]
	return ok
}

// Response messages. Text is hard-coded in pt-BR, matching the form.
const (
	MsgSubmitSuccess   = "Usuário cadastrado com sucesso"
	MsgValidationError = "Erro de validação"
	MsgServerError     = "Erro ao processar requisição"
)

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

// First returns the first message recorded for a field, or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// SubmitRequest represents a survey form submission payload
type SubmitRequest struct {
	Framework   string `json:"framework" validate:"required,framework"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,min=10,max=15"`
	Description string `json:"description" validate:"required,min=10,max=1500"`
}

// Submission is a persisted survey response. Phone is nil when the visitor
// left the field empty.
type Submission struct {
	ID          int64     `json:"id"`
	Framework   string    `json:"framework"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SubmitResponse represents the response after a form submission
type SubmitResponse struct {
	Message string      `json:"message"`
	User    *Submission `json:"user,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}
