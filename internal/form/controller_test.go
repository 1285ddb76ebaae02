package form_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/testpick/testpick-api/internal/form"
	"github.com/testpick/testpick-api/internal/schema"
)

const testResetDelay = 20 * time.Millisecond

// stubClient implements httpclient.Client with a canned response
type stubClient struct {
	status int
	body   string
	err    error
	calls  int
}

func (s *stubClient) Do(req *http.Request) (*http.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(strings.NewReader(s.body)),
	}, nil
}

func newController(client *stubClient) *form.Controller {
	return form.NewController(schema.New(), client, "http://localhost:8080/api/submit", testResetDelay)
}

func fillValid(c *form.Controller) {
	c.UpdateField(form.FieldFramework, "Cypress")
	c.UpdateField(form.FieldName, "Ana")
	c.UpdateField(form.FieldEmail, "ana@example.com")
	c.UpdateField(form.FieldPhone, "11999999999")
	c.UpdateField(form.FieldDescription, "Gosto da sintaxe simples e dos retries automáticos.")
}

func TestController_StartsIdleAndEmpty(t *testing.T) {
	c := newController(&stubClient{})
	defer c.Close()

	assert.Equal(t, form.StateIdle, c.State())
	assert.False(t, c.IsSubmitting())
	assert.Empty(t, c.StatusMessage())
	for name, value := range c.Values() {
		assert.Empty(t, value, "field %s should start empty", name)
	}
}

func TestController_LocallyInvalidSubmitMakesNoRequest(t *testing.T) {
	client := &stubClient{}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	c.UpdateField(form.FieldEmail, "not-an-email")

	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeInvalid, outcome)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, "E-mail inválido", c.FieldError(form.FieldEmail))
	assert.Empty(t, c.StatusMessage())
	assert.Equal(t, form.StateIdle, c.State())
	assert.False(t, c.IsSubmitting())
}

func TestController_UpdateFieldClearsItsError(t *testing.T) {
	c := newController(&stubClient{})
	defer c.Close()

	fillValid(c)
	c.UpdateField(form.FieldDescription, "curto")
	c.Submit(context.Background())
	assert.NotEmpty(t, c.FieldError(form.FieldDescription))

	c.UpdateField(form.FieldDescription, "Agora uma descrição com tamanho suficiente.")
	assert.Empty(t, c.FieldError(form.FieldDescription))
}

func TestController_SuccessfulSubmitResetsAfterDelay(t *testing.T) {
	client := &stubClient{
		status: http.StatusOK,
		body:   `{"message":"Usuário cadastrado com sucesso","user":{"id":1}}`,
	}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeSuccess, outcome)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, form.StateSuccess, c.State())
	assert.Equal(t, "Usuário cadastrado com sucesso", c.StatusMessage())
	// The control stays disabled until the reset delay has elapsed
	assert.True(t, c.IsSubmitting())
	assert.Equal(t, "Ana", c.Value(form.FieldName))

	assert.Eventually(t, func() bool {
		return c.State() == form.StateIdle && !c.IsSubmitting()
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, c.StatusMessage())
	for name, value := range c.Values() {
		assert.Empty(t, value, "field %s should reset to empty", name)
	}
}

func TestController_SubmitDuringSuccessWindowIsBusy(t *testing.T) {
	client := &stubClient{
		status: http.StatusOK,
		body:   `{"message":"Usuário cadastrado com sucesso"}`,
	}
	// Long delay so the second Submit lands inside the display window
	c := form.NewController(schema.New(), client, "http://localhost:8080/api/submit", time.Minute)
	defer c.Close()

	fillValid(c)
	assert.Equal(t, form.OutcomeSuccess, c.Submit(context.Background()))

	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeBusy, outcome)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, form.StateSuccess, c.State())
	assert.Equal(t, "Usuário cadastrado com sucesso", c.StatusMessage())
}

func TestController_SuccessWithoutServerMessageUsesDefault(t *testing.T) {
	client := &stubClient{status: http.StatusOK, body: `{}`}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeSuccess, outcome)
	assert.Equal(t, "Formulário enviado com sucesso!", c.StatusMessage())
}

func TestController_ServerValidationFailureMapsFieldErrors(t *testing.T) {
	client := &stubClient{
		status: http.StatusBadRequest,
		body:   `{"message":"Erro de validação","errors":{"email":["E-mail inválido","E-mail é obrigatório"]}}`,
	}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeFailure, outcome)
	assert.Equal(t, "Erro de validação", c.StatusMessage())
	// First message per field
	assert.Equal(t, "E-mail inválido", c.FieldError(form.FieldEmail))
	// No reset on failure: values are retained and the control re-enables
	assert.Equal(t, "Ana", c.Value(form.FieldName))
	assert.False(t, c.IsSubmitting())
	assert.Equal(t, form.StateIdle, c.State())
}

func TestController_TransportFailureShowsGenericMessage(t *testing.T) {
	client := &stubClient{err: io.ErrUnexpectedEOF}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeFailure, outcome)
	assert.Equal(t, "Erro ao enviar formulário", c.StatusMessage())
	assert.False(t, c.IsSubmitting())
	assert.Equal(t, "Ana", c.Value(form.FieldName))
}

func TestController_UnparsableResponseIsTransportFailure(t *testing.T) {
	client := &stubClient{status: http.StatusOK, body: "<html>gateway error</html>"}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	outcome := c.Submit(context.Background())

	assert.Equal(t, form.OutcomeFailure, outcome)
	assert.Equal(t, "Erro ao enviar formulário", c.StatusMessage())
}

func TestController_NewSubmitCycleClearsPreviousStatus(t *testing.T) {
	client := &stubClient{err: io.ErrUnexpectedEOF}
	c := newController(client)
	defer c.Close()

	fillValid(c)
	c.Submit(context.Background())
	assert.NotEmpty(t, c.StatusMessage())

	client.err = nil
	client.status = http.StatusOK
	client.body = `{"message":"Usuário cadastrado com sucesso"}`

	outcome := c.Submit(context.Background())
	assert.Equal(t, form.OutcomeSuccess, outcome)
	assert.Equal(t, "Usuário cadastrado com sucesso", c.StatusMessage())
}
