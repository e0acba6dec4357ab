package main

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"

	"jusho-client/internal/autofill"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// textField is an in-memory form field. Emitted events are only logged.
type textField struct {
	name string

	mu    sync.Mutex
	value string
}

func (f *textField) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *textField) SetValue(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

func (f *textField) Emit(event string) {
	log.Debug().Str("field", f.name).Str("event", event).Msg("field event")
}

type textForm map[string]*textField

func newTextForm() textForm {
	form := textForm{}
	for _, name := range []string{autofill.FieldPostal, autofill.FieldPref, autofill.FieldCity, autofill.FieldTown, autofill.FieldAddress} {
		form[name] = &textField{name: name}
	}
	return form
}

func (f textForm) Field(name string) (autofill.Field, bool) {
	field, ok := f[name]
	return field, ok
}

func (f textForm) values() map[string]string {
	out := make(map[string]string, len(f))
	for name, field := range f {
		out[name] = field.Value()
	}
	return out
}

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill address fields from postal codes read line by line on stdin",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, cfg, err := newClient()
		if err != nil {
			return err
		}

		done := make(chan error, 1)
		w := autofill.New(c, autofill.Options{
			Debounce:  cfg.AutofillDebounce(),
			OnResolve: func(autofill.Resolved) { done <- nil },
			OnError:   func(err error) { done <- err },
		})
		defer w.DetachAll()

		form := newTextForm()
		bindings := w.Initialize(form)
		if len(bindings) == 0 {
			return fmt.Errorf("form has no %s field", autofill.FieldPostal)
		}
		postal := form[autofill.FieldPostal]

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if _, ok := autofill.ExtractPostalCode(line); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "not a postal code: %q\n", line)
				continue
			}

			postal.SetValue(line)
			bindings[0].HandleInput()

			select {
			case err := <-done:
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", line, err)
					continue
				}
				if err := printJSON(form.values()); err != nil {
					return err
				}
			case <-time.After(cfg.AutofillDebounce() + c.Timeout() + time.Second):
				return fmt.Errorf("lookup for %q did not finish", line)
			}
		}

		return scanner.Err()
	},
}
