package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rotary-puebla/club-site-api/internal/app/admin"
	"github.com/rotary-puebla/club-site-api/internal/domain"
)

const helpText = `commands:
  tab members|events|gallery   switch the active collection
  list                         show the active collection
  refresh                      re-list the active collection
  new                          open an empty form
  edit <id>                    open a form for an existing record
  set <field> <value...>       fill a form field
  show                         print the open form
  save                         write the open form
  cancel                       discard the open form
  delete <id>                  delete a record after confirmation
  exit                         leave the editor
  help                         print this text`

// shell drives an admin.Workflow from line-oriented input.
type shell struct {
	wf  *admin.Workflow
	in  *bufio.Scanner
	out io.Writer
}

func newShell(in io.Reader, out io.Writer) *shell {
	return &shell{in: bufio.NewScanner(in), out: out}
}

// readLine returns the next input line, or io.EOF when input is exhausted.
func (s *shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// Confirm reads a yes/no answer from the same input stream as commands.
func (s *shell) Confirm(_ context.Context, prompt string) (bool, error) {
	answer, err := s.readLine(prompt + " [s/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "s", "si", "sí", "y", "yes":
		return true, nil
	}
	return false, nil
}

// run loops until input ends or the operator exits.
func (s *shell) run(ctx context.Context) error {
	for {
		if s.wf.State() != admin.Authenticated {
			candidate, err := s.readLine("secret: ")
			if err != nil {
				return ignoreEOF(err)
			}
			if err := s.wf.Authenticate(ctx, candidate); err != nil {
				fmt.Fprintln(s.out, "invalid secret")
				continue
			}
			s.summary()
			continue
		}

		line, err := s.readLine(fmt.Sprintf("%s> ", s.wf.Tab()))
		if err != nil {
			return ignoreEOF(err)
		}
		if line == "" {
			continue
		}
		if done := s.exec(ctx, line); done {
			return nil
		}
	}
}

// exec runs one command line. It reports true when the shell should stop.
func (s *shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "tab":
		k, err := domain.ParseKind(rest)
		if err != nil {
			s.report(err)
			return false
		}
		if err := s.wf.SetTab(k); err != nil {
			s.report(err)
			return false
		}
		s.list()
	case "list":
		s.list()
	case "refresh":
		if err := s.wf.Refresh(ctx, s.wf.Tab()); err != nil {
			s.report(err)
			return false
		}
		s.list()
	case "new":
		if _, err := s.wf.OpenCreate(); err != nil {
			s.report(err)
			return false
		}
		s.show()
	case "edit":
		r, ok := s.find(rest)
		if !ok {
			fmt.Fprintf(s.out, "no %s record with id %q\n", s.wf.Tab(), rest)
			return false
		}
		if _, err := s.wf.OpenEdit(r); err != nil {
			s.report(err)
			return false
		}
		s.show()
	case "set":
		f, ok := s.wf.Form()
		if !ok {
			s.report(admin.ErrNoForm)
			return false
		}
		name, value, _ := strings.Cut(rest, " ")
		if err := f.Set(name, strings.TrimSpace(value)); err != nil {
			s.report(err)
		}
	case "show":
		s.show()
	case "save":
		if err := s.wf.Submit(ctx); err != nil {
			s.report(err)
			return false
		}
		fmt.Fprintln(s.out, "saved")
		s.list()
	case "cancel":
		s.wf.CloseForm()
	case "delete":
		if rest == "" {
			fmt.Fprintln(s.out, "usage: delete <id>")
			return false
		}
		deleted, err := s.wf.Delete(ctx, s.wf.Tab(), rest)
		if err != nil {
			s.report(err)
			return false
		}
		if deleted {
			fmt.Fprintln(s.out, "deleted")
			s.list()
		}
	case "exit", "quit":
		s.wf.Exit()
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q (try help)\n", cmd)
	}
	return false
}

func (s *shell) summary() {
	for _, k := range domain.Kinds() {
		note := ""
		if s.wf.Fallback(k) {
			note = " (fallback data)"
		}
		fmt.Fprintf(s.out, "%s: %d%s\n", k, len(s.wf.Records(k)), note)
	}
}

func (s *shell) list() {
	k := s.wf.Tab()
	if s.wf.Fallback(k) {
		fmt.Fprintln(s.out, "showing fallback data; the content service is unreachable")
	}
	records := s.wf.Records(k)
	if len(records) == 0 {
		fmt.Fprintln(s.out, "(empty)")
	}
	for _, r := range records {
		fmt.Fprintf(s.out, "%6s  %s\n", r.RecordID(), describe(r))
	}
}

func (s *shell) find(id string) (domain.Record, bool) {
	for _, r := range s.wf.Records(s.wf.Tab()) {
		if r.RecordID() == id {
			return r, true
		}
	}
	return nil, false
}

func (s *shell) show() {
	f, ok := s.wf.Form()
	if !ok {
		fmt.Fprintln(s.out, "no open form")
		return
	}
	mode := "new"
	if f.Editing() {
		mode = "edit " + f.Target().ID()
	}
	fmt.Fprintf(s.out, "[%s %s]\n", f.Kind(), mode)
	for _, fld := range f.Fields() {
		mark := " "
		if fld.Required {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %-17s %-32s %s\n", mark, fld.Name, fld.Label, f.Get(fld.Name))
	}
}

func (s *shell) report(err error) {
	var verr *admin.ValidationError
	if errors.As(err, &verr) {
		for name, msg := range verr.Fields {
			fmt.Fprintf(s.out, "  %s: %s\n", name, msg)
		}
		return
	}
	fmt.Fprintf(s.out, "error: %v\n", err)
}

func describe(r domain.Record) string {
	switch v := r.(type) {
	case domain.Member:
		return fmt.Sprintf("%s (%s)", v.Name, v.Role)
	case domain.Event:
		return fmt.Sprintf("%s, %s %s", v.Title, v.Date, v.Time)
	case domain.GalleryItem:
		if v.IsInstagram {
			return v.Caption + " [instagram]"
		}
		return v.Caption
	}
	return r.RecordID()
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
