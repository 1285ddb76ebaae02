// Terminal client for the Test Pick survey. It drives the same form
// controller and schema the web page uses, posting to a running API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/testpick/testpick-api/config"
	"github.com/testpick/testpick-api/internal/form"
	"github.com/testpick/testpick-api/internal/models"
	"github.com/testpick/testpick-api/internal/schema"
	"github.com/testpick/testpick-api/pkg/httpclient"
)

func main() {
	cfg := config.LoadForm()

	controller := form.NewController(
		schema.New(),
		httpclient.NewStandardClient(),
		cfg.SubmitEndpoint,
		form.DefaultResetDelay,
	)
	defer controller.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Test Pick - pesquisa de frameworks de teste")
	fmt.Printf("Endpoint: %s\n\n", cfg.SubmitEndpoint)

	for {
		promptFields(reader, controller)

		outcome := controller.Submit(context.Background())
		switch outcome {
		case form.OutcomeInvalid:
			fmt.Println("\nCorrija os campos abaixo:")
			printFieldErrors(controller)
		case form.OutcomeFailure:
			fmt.Printf("\n%s\n", controller.StatusMessage())
			printFieldErrors(controller)
		case form.OutcomeSuccess:
			fmt.Printf("\n%s\n", controller.StatusMessage())
			// The controller clears itself after the display delay; wait it
			// out so the next round starts from an empty form.
			for controller.IsSubmitting() {
				time.Sleep(50 * time.Millisecond)
			}
			if !askYesNo(reader, "\nEnviar outra resposta? [s/N] ") {
				return
			}
		}
		fmt.Println()
	}
}

func promptFields(reader *bufio.Reader, controller *form.Controller) {
	fmt.Println("Frameworks:")
	for i, framework := range models.Frameworks {
		fmt.Printf("  %2d. %s\n", i+1, framework)
	}

	choice := prompt(reader, "Framework (número)", controller.Value(form.FieldFramework))
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(models.Frameworks) {
		controller.UpdateField(form.FieldFramework, models.Frameworks[n-1])
	} else if choice != controller.Value(form.FieldFramework) {
		controller.UpdateField(form.FieldFramework, choice)
	}

	controller.UpdateField(form.FieldName, prompt(reader, "Nome", controller.Value(form.FieldName)))
	controller.UpdateField(form.FieldEmail, prompt(reader, "E-mail", controller.Value(form.FieldEmail)))
	controller.UpdateField(form.FieldPhone, prompt(reader, "Telefone (opcional)", controller.Value(form.FieldPhone)))
	controller.UpdateField(form.FieldDescription, prompt(reader, "Por que esse framework?", controller.Value(form.FieldDescription)))
}

// prompt reads one line; an empty answer keeps the current value.
func prompt(reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current
	}
	return line
}

func printFieldErrors(controller *form.Controller) {
	for _, name := range []string{
		form.FieldFramework,
		form.FieldName,
		form.FieldEmail,
		form.FieldPhone,
		form.FieldDescription,
	} {
		if msg := controller.FieldError(name); msg != "" {
			fmt.Printf("  %s: %s\n", name, msg)
		}
	}
}

func askYesNo(reader *bufio.Reader, question string) bool {
	fmt.Print(question)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "s" || answer == "sim" || answer == "y"
}
