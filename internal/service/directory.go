package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/notesapp/notes-console/internal/domain/model"
	apperrors "github.com/notesapp/notes-console/internal/errors"
	"github.com/notesapp/notes-console/internal/ports"
	"golang.org/x/sync/errgroup"
)

// DirectoryServiceOptions groups dependencies for DirectoryService.
type DirectoryServiceOptions struct {
	API    ports.APIClient // Required
	Logger *slog.Logger    // Optional
}

// DirectoryService reads notes, users and students from the backend.
type DirectoryService struct {
	api    ports.APIClient
	logger *slog.Logger
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(opts DirectoryServiceOptions) *DirectoryService {
	if opts.API == nil {
		panic("DirectoryService requires an API client")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryService{api: opts.API, logger: logger.With("component", "directory_service")}
}

// ListNotes returns one page of notes.
func (s *DirectoryService) ListNotes(ctx context.Context, opts model.NoteListOptions) (*model.NotesPage, error) {
	var page model.NotesPage
	if err := s.api.GetJSON(ctx, "/notes/", opts.Query(), &page); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return &page, nil
}

// GetNote returns a single note by id.
func (s *DirectoryService) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	var note model.Note
	if err := s.api.GetJSON(ctx, "/notes/"+strconv.FormatInt(id, 10), nil, &note); err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return &note, nil
}

// ListUsers returns one page of users. The backend restricts the listing
// by the caller's role.
func (s *DirectoryService) ListUsers(ctx context.Context, opts model.UserListOptions) (*model.UsersPage, error) {
	var page model.UsersPage
	if err := s.api.GetJSON(ctx, "/utilisateurs/", opts.Query(), &page); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &page, nil
}

// GetUser returns a single user by id.
func (s *DirectoryService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.api.GetJSON(ctx, "/utilisateurs/"+strconv.FormatInt(id, 10), nil, &user); err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

// ListStudents returns students in backend order.
func (s *DirectoryService) ListStudents(ctx context.Context, opts model.StudentListOptions) ([]model.Student, error) {
	var students []model.Student
	if err := s.api.GetJSON(ctx, "/eleves/", opts.Query(), &students); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// GetStudent returns a single student by id.
func (s *DirectoryService) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	if err := s.api.GetJSON(ctx, "/eleves/"+strconv.FormatInt(id, 10), nil, &student); err != nil {
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}
	return &student, nil
}

// Dashboard summarizes the three collections.
type Dashboard struct {
	Notes    int
	Users    int
	Students int
	// UsersVisible is false when the caller may not list users.
	UsersVisible bool
	RecentNotes  []model.Note
}

// dashboardStudentLimit bounds the student count fetch; the endpoint has no total.
const dashboardStudentLimit = 1000

// Dashboard fetches note, user and student totals concurrently. The first
// failure cancels the remaining requests. A 403 on the user listing only
// hides the user total.
func (s *DirectoryService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		page, err := s.ListNotes(gctx, model.NoteListOptions{Page: 1, Limit: 5})
		if err != nil {
			return err
		}
		d.Notes = page.Total
		d.RecentNotes = page.Notes
		return nil
	})
	g.Go(func() error {
		page, err := s.ListUsers(gctx, model.UserListOptions{Page: 1, Limit: 1})
		if apperrors.IsForbidden(err) {
			return nil
		}
		if err != nil {
			return err
		}
		d.Users = page.Total
		d.UsersVisible = true
		return nil
	})
	g.Go(func() error {
		students, err := s.ListStudents(gctx, model.StudentListOptions{Limit: dashboardStudentLimit})
		if err != nil {
			return err
		}
		d.Students = len(students)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.DebugContext(ctx, "dashboard fetch failed", "error", err)
		return nil, err
	}
	return &d, nil
}
