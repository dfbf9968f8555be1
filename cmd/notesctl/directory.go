package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/notesapp/notes-console/internal/domain/model"
	"github.com/notesapp/notes-console/internal/listing"
)

const dateLayout = "2006-01-02"

type notesOptions struct {
	ID   int64
	List model.NoteListOptions
}

func parseNotesFlags(cmdCtx *commandContext, args []string) (notesOptions, error) {
	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var (
		opts notesOptions
		sort string
	)
	fs.Int64Var(&opts.ID, "id", 0, "Show a single note")
	fs.StringVar(&opts.List.Search, "search", "", "Match title or content")
	fs.StringVar(&opts.List.Author, "author", "", "Match author name")
	fs.StringVar(&sort, "sort", string(model.NoteSortDateDesc), "date_desc or date_asc")
	fs.IntVar(&opts.List.Page, "page", 1, "Page number")
	fs.IntVar(&opts.List.Limit, "limit", 20, "Page size (max 100)")
	if err := fs.Parse(args); err != nil {
		return notesOptions{}, err
	}
	opts.List.Sort = model.NoteSort(sort)
	return opts, nil
}

func runNotes(cmdCtx *commandContext, args []string) error {
	opts, err := parseNotesFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	dir := cmdCtx.App.Directory

	if opts.ID > 0 {
		if err := cmdCtx.enterView("/notes/" + strconv.FormatInt(opts.ID, 10)); err != nil {
			return err
		}
		note, err := dir.GetNote(cmdCtx.Ctx, opts.ID)
		if err != nil {
			return err
		}
		return printNote(cmdCtx, note)
	}

	if err := cmdCtx.enterView("/notes"); err != nil {
		return err
	}
	page, err := dir.ListNotes(cmdCtx.Ctx, opts.List)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tTITLE\tAUTHOR\tTEAM\tCREATED"); err != nil {
		return fmt.Errorf("write notes header row: %w", err)
	}
	for _, n := range page.Notes {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\n",
			n.ID, n.Title, dash(n.AuthorName()), dash(deref(n.Team)), n.CreatedAt.Format(dateLayout)); err != nil {
			return fmt.Errorf("write note row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "\nPage %d, %d of %d notes\n", page.Page, len(page.Notes), page.Total)
}

func printNote(cmdCtx *commandContext, n *model.Note) error {
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", strconv.FormatInt(n.ID, 10)},
		{"Title", n.Title},
		{"Author", dash(n.AuthorName())},
		{"Team", dash(deref(n.Team))},
		{"Category", dash(deref(n.Category))},
		{"Priority", dash(deref(n.Priority))},
		{"Views", strconv.Itoa(n.Views)},
		{"Likes", strconv.Itoa(n.Likes)},
		{"Created", n.CreatedAt.Format(time.RFC3339)},
	}
	for _, r := range rows {
		if err := writef(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(cmdCtx.Out, "\n%s\n", n.Content)
}

type usersOptions struct {
	ID   int64
	List model.UserListOptions
}

func parseUsersFlags(cmdCtx *commandContext, args []string) (usersOptions, error) {
	fs := flag.NewFlagSet("users", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var (
		opts usersOptions
		sort string
	)
	fs.Int64Var(&opts.ID, "id", 0, "Show a single user")
	fs.StringVar(&opts.List.Name, "name", "", "Filter by name")
	fs.StringVar(&opts.List.Email, "email", "", "Filter by email")
	fs.StringVar(&opts.List.Team, "team", "", "Filter by team")
	fs.StringVar(&opts.List.Type, "type", "", "Filter by account type")
	fs.StringVar(&sort, "sort", string(model.UserSortNameAsc), "nom_asc, nom_desc, date_asc or date_desc")
	fs.IntVar(&opts.List.Page, "page", 1, "Page number")
	fs.IntVar(&opts.List.Limit, "limit", 20, "Page size (max 100)")
	if err := fs.Parse(args); err != nil {
		return usersOptions{}, err
	}
	opts.List.Sort = model.UserSort(sort)
	return opts, nil
}

func runUsers(cmdCtx *commandContext, args []string) error {
	opts, err := parseUsersFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	dir := cmdCtx.App.Directory

	if opts.ID > 0 {
		if err := cmdCtx.enterView("/utilisateurs/" + strconv.FormatInt(opts.ID, 10)); err != nil {
			return err
		}
		u, err := dir.GetUser(cmdCtx.Ctx, opts.ID)
		if err != nil {
			return err
		}
		return writeUsers(cmdCtx, []model.User{*u}, "")
	}

	if err := cmdCtx.enterView("/utilisateurs"); err != nil {
		return err
	}
	page, err := dir.ListUsers(cmdCtx.Ctx, opts.List)
	if err != nil {
		return err
	}
	return writeUsers(cmdCtx, page.Users, fmt.Sprintf("\nPage %d, %d of %d users\n", page.Page, len(page.Users), page.Total))
}

func writeUsers(cmdCtx *commandContext, users []model.User, footer string) error {
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tNAME\tEMAIL\tTEAM\tTYPE\tACTIVE"); err != nil {
		return fmt.Errorf("write users header row: %w", err)
	}
	for _, u := range users {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\t%t\n",
			u.ID, u.Name, u.Email, dash(deref(u.Team)), dash(deref(u.Type)), u.Active); err != nil {
			return fmt.Errorf("write user row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if footer == "" {
		return nil
	}
	return writef(cmdCtx.Out, "%s", footer)
}

type studentsOptions struct {
	ID    int64
	Query string
	Sort  string
	Desc  bool
	Page  int
	Size  int
}

func parseStudentsFlags(cmdCtx *commandContext, args []string) (studentsOptions, error) {
	fs := flag.NewFlagSet("students", flag.ContinueOnError)
	fs.SetOutput(cmdCtx.Err)

	var opts studentsOptions
	fs.Int64Var(&opts.ID, "id", 0, "Show a single student")
	fs.StringVar(&opts.Query, "q", "", "Filter by name (case-insensitive substring)")
	fs.StringVar(&opts.Sort, "sort", "name", "Sort key: name, created or id")
	fs.BoolVar(&opts.Desc, "desc", false, "Sort descending")
	fs.IntVar(&opts.Page, "page", 1, "Page number")
	fs.IntVar(&opts.Size, "size", listing.DefaultPageSize, "Page size")
	if err := fs.Parse(args); err != nil {
		return studentsOptions{}, err
	}
	opts.Sort = strings.ToLower(strings.TrimSpace(opts.Sort))
	switch opts.Sort {
	case "name", "created", "id":
	default:
		return studentsOptions{}, fmt.Errorf("invalid --sort %q (valid options: name, created, id)", opts.Sort)
	}
	return opts, nil
}

func runStudents(cmdCtx *commandContext, args []string) error {
	opts, err := parseStudentsFlags(cmdCtx, args)
	if err != nil {
		return err
	}
	dir := cmdCtx.App.Directory

	if opts.ID > 0 {
		if err := cmdCtx.enterView("/eleves/" + strconv.FormatInt(opts.ID, 10)); err != nil {
			return err
		}
		s, err := dir.GetStudent(cmdCtx.Ctx, opts.ID)
		if err != nil {
			return err
		}
		return writeStudents(cmdCtx, []model.Student{*s}, "")
	}

	if err := cmdCtx.enterView("/eleves"); err != nil {
		return err
	}
	// The backend returns students unpaged; filtering and paging happen here.
	all, err := dir.ListStudents(cmdCtx.Ctx, model.StudentListOptions{Limit: 1000})
	if err != nil {
		return err
	}
	page := listing.Paginate(sortStudents(filterStudents(all, opts.Query), opts.Sort, opts.Desc), opts.Page, opts.Size)

	footer := fmt.Sprintf("\nPage %d/%d, showing %d-%d of %d students\n",
		page.Page, page.TotalPages, page.StartIndex, page.EndIndex, page.TotalCount)
	return writeStudents(cmdCtx, page.Items, footer)
}

func filterStudents(all []model.Student, q string) []model.Student {
	return listing.Filter(all, func(s model.Student) []string { return []string{s.FullName()} }, q)
}

func sortStudents(items []model.Student, key string, desc bool) []model.Student {
	switch key {
	case "created":
		return listing.SortBy(items, func(s model.Student) int64 { return s.CreatedAt.UnixNano() }, desc)
	case "id":
		return listing.SortBy(items, func(s model.Student) int64 { return s.ID }, desc)
	default:
		return listing.SortBy(items, func(s model.Student) string {
			return strings.ToLower(s.LastName + " " + s.FirstName)
		}, desc)
	}
}

func writeStudents(cmdCtx *commandContext, students []model.Student, footer string) error {
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tNAME\tSTATUS\tNOTE\tCREATED"); err != nil {
		return fmt.Errorf("write students header row: %w", err)
	}
	for _, s := range students {
		note := "-"
		if s.NoteID != nil {
			note = strconv.FormatInt(*s.NoteID, 10)
		}
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\n",
			s.ID, s.FullName(), studentStatus(s), note, s.CreatedAt.Format(dateLayout)); err != nil {
			return fmt.Errorf("write student row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if footer == "" {
		return nil
	}
	return writef(cmdCtx.Out, "%s", footer)
}

func studentStatus(s model.Student) string {
	switch {
	case s.Closed:
		return "closed"
	case s.Pending:
		return "pending"
	case s.Active:
		return "active"
	default:
		return "inactive"
	}
}

func runDashboard(cmdCtx *commandContext, _ []string) error {
	if err := cmdCtx.enterView("/"); err != nil {
		return err
	}
	d, err := cmdCtx.App.Directory.Dashboard(cmdCtx.Ctx)
	if err != nil {
		return err
	}

	users := strconv.Itoa(d.Users)
	if !d.UsersVisible {
		users = "(admins only)"
	}
	tw := tabwriter.NewWriter(cmdCtx.Out, 0, 4, 2, ' ', 0)
	for _, row := range [][2]string{
		{"Notes", strconv.Itoa(d.Notes)},
		{"Users", users},
		{"Students", strconv.Itoa(d.Students)},
	} {
		if err := writef(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(d.RecentNotes) == 0 {
		return nil
	}
	if err := writeln(cmdCtx.Out, "\nRecent notes:"); err != nil {
		return err
	}
	for _, n := range d.RecentNotes {
		if err := writef(cmdCtx.Out, "  #%d %s (%s)\n", n.ID, n.Title, n.CreatedAt.Format(dateLayout)); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
