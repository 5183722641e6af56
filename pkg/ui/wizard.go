package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/treescope/pkg/store"
)

// WizardResult holds the choices made in the interactive setup form.
type WizardResult struct {
	Type      string
	Keys      []int
	Operation string
	Arg       int
}

// IsTerminal checks if stdin is connected to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !IsTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// ParseKeys parses a comma or space separated list of integer keys,
// rejecting duplicates.
func ParseKeys(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no keys given")
	}
	seen := make(map[int]bool)
	keys := make([]int, 0, len(fields))
	for _, f := range fields {
		k, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q", f)
		}
		if k < 0 {
			return nil, fmt.Errorf("keys must be non-negative, got %d", k)
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate key %d", k)
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys, nil
}

// defaultStructType normalizes a configured structure type, falling back
// to the binary search tree when unset or unknown.
func defaultStructType(s string) string {
	if strings.EqualFold(s, store.TypeLinkedList) {
		return store.TypeLinkedList
	}
	return store.TypeBST
}

// RunWizard walks the user through choosing a structure, its keys, and the
// operation to animate. defaultType preselects the structure choice.
func RunWizard(defaultType string) (WizardResult, error) {
	res := WizardResult{Type: defaultStructType(defaultType), Operation: "bfs"}
	var keysInput, argInput string

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Structure").
				Options(
					huh.NewOption("Binary search tree", store.TypeBST),
					huh.NewOption("Linked list", store.TypeLinkedList),
				).
				Value(&res.Type),
			huh.NewInput().
				Title("Keys").
				Description("Comma separated integers, inserted in order").
				Placeholder("10, 5, 15, 3, 7").
				Validate(func(s string) error {
					_, err := ParseKeys(s)
					return err
				}).
				Value(&keysInput),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Operation to animate").
				Options(
					huh.NewOption("Breadth-first traversal", "bfs"),
					huh.NewOption("Pre-order traversal", "preorder"),
					huh.NewOption("In-order traversal", "inorder"),
					huh.NewOption("Post-order traversal", "postorder"),
					huh.NewOption("Insert a key", "insert"),
					huh.NewOption("Remove a key", "remove"),
					huh.NewOption("Search for a key", "search"),
				).
				Value(&res.Operation),
		),
	)
	if err := form.Run(); err != nil {
		return res, err
	}

	keys, err := ParseKeys(keysInput)
	if err != nil {
		return res, err
	}
	res.Keys = keys

	if res.Operation == "insert" || res.Operation == "remove" || res.Operation == "search" {
		argForm := newForm(
			huh.NewGroup(
				huh.NewInput().
					Title(fmt.Sprintf("Key to %s", res.Operation)).
					Validate(func(s string) error {
						_, err := strconv.Atoi(strings.TrimSpace(s))
						return err
					}).
					Value(&argInput),
			),
		)
		if err := argForm.Run(); err != nil {
			return res, err
		}
		res.Arg, _ = strconv.Atoi(strings.TrimSpace(argInput))
	}

	return res, nil
}
