package seeder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/systmms/dataseeder/internal/logging"
	"github.com/systmms/dataseeder/internal/secretstore"
)

type setupField struct {
	key    string
	prompt string
	label  string
	secret bool
}

var setupFields = []setupField{
	{secretstore.KeyConnectionString, "Enter your connection string", "MongoDB connection string", true},
	{secretstore.KeyDatabaseName, "Enter the database name", "MongoDB database name", false},
	{secretstore.KeyCollectionName, "Enter the collection name", "MongoDB collection name", false},
}

// Setup manages the connection settings held in the secret store
type Setup struct {
	store *secretstore.Store
	in    *bufio.Reader
	out   io.Writer
}

// NewSetup creates a Setup reading answers from in
func NewSetup(store *secretstore.Store, in io.Reader, out io.Writer) *Setup {
	return &Setup{store: store, in: bufio.NewReader(in), out: out}
}

// Configure prompts for each setting in turn. A blank answer keeps the
// stored value; any other answer is written to the store right away.
func (s *Setup) Configure() error {
	for _, field := range setupFields {
		current, err := s.store.GetSecret(field.key)
		if err != nil {
			return err
		}

		if current != "" {
			shown := current
			if field.secret {
				shown = logging.MaskURI(current)
			}
			fmt.Fprintf(s.out, "%s [%s]: ", field.prompt, shown)
		} else {
			fmt.Fprintf(s.out, "%s: ", field.prompt)
		}

		answer, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read %s: %w", field.label, err)
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		if err := s.store.SetSecret(field.key, answer); err != nil {
			return err
		}
	}

	fmt.Fprintln(s.out, "Setup complete. You can now use the other commands.")
	return nil
}

// Show prints the stored settings. The connection string is masked unless
// unmasked is set.
func (s *Setup) Show(unmasked bool) error {
	settings, err := s.store.Settings()
	if err != nil {
		return err
	}

	for _, field := range setupFields {
		value := settings.Get(field.key)
		switch {
		case value == "":
			value = "(not set)"
		case field.secret && !unmasked:
			value = logging.MaskURI(value)
		}
		fmt.Fprintf(s.out, "%s: %s\n", field.label, value)
	}
	return nil
}

// Reset removes every stored setting
func (s *Setup) Reset() error {
	if err := s.store.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Stored connection settings removed.")
	return nil
}
