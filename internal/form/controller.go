package form

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/testpick/testpick-api/internal/models"
	"github.com/testpick/testpick-api/internal/schema"
	"github.com/testpick/testpick-api/pkg/httpclient"
)

// Field names, matching the schema's error mapping keys.
const (
	FieldFramework   = "framework"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldDescription = "description"
)

var fieldNames = []string{FieldFramework, FieldName, FieldEmail, FieldPhone, FieldDescription}

// State is the controller's position in the submit cycle:
// Idle -> Submitting -> {Success, Failure} -> Idle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailure
)

// Outcome is the terminal result of one Submit call.
type Outcome int

const (
	// OutcomeInvalid: local validation failed, no request was sent.
	OutcomeInvalid Outcome = iota
	// OutcomeSuccess: the server accepted and persisted the submission.
	OutcomeSuccess
	// OutcomeFailure: the server rejected the payload or was unreachable.
	OutcomeFailure
	// OutcomeBusy: a submission is already in flight.
	OutcomeBusy
)

const (
	// DefaultResetDelay is how long the success message stays visible before
	// the form clears and the submit control is re-enabled.
	DefaultResetDelay = 3 * time.Second

	defaultSuccessMessage = "Formulário enviado com sucesso!"
	failureMessage        = "Erro ao enviar formulário"
)

// Controller mediates between user input and the submission endpoint. It
// owns all UI-visible transient state: field values, per-field errors, the
// status message and the busy flag. Methods are safe for concurrent use.
type Controller struct {
	schema     *schema.Schema
	client     httpclient.Client
	endpoint   string
	resetDelay time.Duration

	mu            sync.Mutex
	state         State
	values        map[string]string
	fieldErrors   map[string]string
	statusMessage string
	submitting    bool
	resetTimer    *time.Timer
}

// NewController creates a form controller posting to endpoint. All fields
// are seeded with empty defaults.
func NewController(sch *schema.Schema, client httpclient.Client, endpoint string, resetDelay time.Duration) *Controller {
	c := &Controller{
		schema:     sch,
		client:     client,
		endpoint:   endpoint,
		resetDelay: resetDelay,
	}
	c.values = emptyValues()
	c.fieldErrors = make(map[string]string)
	return c
}

func emptyValues() map[string]string {
	values := make(map[string]string, len(fieldNames))
	for _, name := range fieldNames {
		values[name] = ""
	}
	return values
}

// UpdateField records a new value for a field and clears its current error.
// Validation is deferred to submit time. Unknown field names are ignored.
func (c *Controller) UpdateField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.values[name]; !ok {
		return
	}
	c.values[name] = value
	delete(c.fieldErrors, name)
}

// Submit runs one full submit cycle: local validation, the POST request,
// and response handling. It blocks until the cycle reaches a terminal
// outcome; the delayed form reset after success runs in the background.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return OutcomeBusy
	}

	req := c.request()
	fieldErrors, err := c.schema.Validate(&req)
	if err != nil {
		c.statusMessage = failureMessage
		c.mu.Unlock()
		return OutcomeFailure
	}
	if fieldErrors != nil {
		// Locally invalid: surface the errors and abort without a network call
		c.fieldErrors = firstMessages(fieldErrors)
		c.mu.Unlock()
		return OutcomeInvalid
	}

	c.submitting = true
	c.state = StateSubmitting
	c.statusMessage = ""
	c.fieldErrors = make(map[string]string)
	c.mu.Unlock()

	status, body, sendErr := c.post(ctx, &req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sendErr != nil {
		// No usable response at all
		c.statusMessage = failureMessage
		c.submitting = false
		c.state = StateIdle
		return OutcomeFailure
	}

	if status >= 200 && status < 300 {
		c.statusMessage = body.Message
		if c.statusMessage == "" {
			c.statusMessage = defaultSuccessMessage
		}
		c.state = StateSuccess
		// The form clears and re-enables only after the display delay
		c.resetTimer = time.AfterFunc(c.resetDelay, c.reset)
		return OutcomeSuccess
	}

	c.statusMessage = body.Message
	if c.statusMessage == "" {
		c.statusMessage = failureMessage
	}
	// Server-reported field errors overwrite any local ones
	for field, msgs := range body.Errors {
		if len(msgs) > 0 {
			c.fieldErrors[field] = msgs[0]
		}
	}
	c.submitting = false
	c.state = StateIdle
	return OutcomeFailure
}

// post sends the validated payload and decodes the response body. Any
// failure to reach the server or parse its response is returned as an error.
func (c *Controller) post(ctx context.Context, payload *models.SubmitRequest) (int, *models.SubmitResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer httpResp.Body.Close()

	var body models.SubmitResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&body); err != nil {
		return 0, nil, err
	}

	return httpResp.StatusCode, &body, nil
}

// reset returns the form to its empty defaults after a successful cycle.
func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values = emptyValues()
	c.fieldErrors = make(map[string]string)
	c.statusMessage = ""
	c.submitting = false
	c.state = StateIdle
}

// Close stops any pending reset timer.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.resetTimer != nil {
		c.resetTimer.Stop()
		c.resetTimer = nil
	}
}

func (c *Controller) request() models.SubmitRequest {
	return models.SubmitRequest{
		Framework:   c.values[FieldFramework],
		Name:        c.values[FieldName],
		Email:       c.values[FieldEmail],
		Phone:       c.values[FieldPhone],
		Description: c.values[FieldDescription],
	}
}

func firstMessages(fieldErrors models.FieldErrors) map[string]string {
	first := make(map[string]string, len(fieldErrors))
	for field := range fieldErrors {
		first[field] = fieldErrors.First(field)
	}
	return first
}

// State returns the controller's current position in the submit cycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Value returns the current contents of a field.
func (c *Controller) Value(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[name]
}

// Values returns a copy of all current field contents.
func (c *Controller) Values() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make(map[string]string, len(c.values))
	for name, value := range c.values {
		values[name] = value
	}
	return values
}

// FieldError returns the current validation message for a field, or "".
func (c *Controller) FieldError(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrors[name]
}

// StatusMessage returns the most recent success or failure text.
func (c *Controller) StatusMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusMessage
}

// IsSubmitting reports whether the submit control should be disabled.
func (c *Controller) IsSubmitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}
