package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"git.solsynth.dev/hypernet/journal/pkg/internal/services"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `usage:
  journal                                                   run the server
  journal group create -title T -slug S -description D     create a group
  journal group delete -slug S                              delete a group, its posts stay
  journal group list                                        list groups
  journal account delete -username U                        delete an account with its content`

// Run executes one admin command. The database must be connected beforehand.
func Run(out io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w\n%s", ErrUnknownCommand, usage)
	}

	switch args[0] + " " + args[1] {
	case "group create":
		return createGroup(out, args[2:])
	case "group delete":
		return deleteGroup(out, args[2:])
	case "group list":
		return listGroups(out)
	case "account delete":
		return deleteAccount(out, args[2:])
	default:
		return fmt.Errorf("%w: %s %s\n%s", ErrUnknownCommand, args[0], args[1], usage)
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func createGroup(out io.Writer, args []string) error {
	fs := newFlagSet("group create", out)
	var in services.GroupInput
	fs.StringVar(&in.Title, "title", "", "group `title`, at most 200 characters")
	fs.StringVar(&in.Slug, "slug", "", "unique `slug` used in the group address")
	fs.StringVar(&in.Description, "description", "", "group `description`")
	if err := fs.Parse(args); err != nil {
		return err
	}

	group, err := services.NewGroup(in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Group %q created with id %d.\n", group.Slug, group.ID)
	return err
}

func deleteGroup(out io.Writer, args []string) error {
	fs := newFlagSet("group delete", out)
	slug := fs.String("slug", "", "`slug` of the group to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := services.DeleteGroup(*slug); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Group %q deleted.\n", *slug)
	return err
}

func listGroups(out io.Writer) error {
	groups, err := services.ListGroups()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE")
	for _, group := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\n", group.ID, group.Slug, group.Title)
	}
	return w.Flush()
}

func deleteAccount(out io.Writer, args []string) error {
	fs := newFlagSet("account delete", out)
	username := fs.String("username", "", "`username` of the account to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := services.DeleteAccount(*username); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Account %q deleted.\n", *username)
	return err
}
