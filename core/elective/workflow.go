package elective

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
	"github.com/trezcool/schooladmin/core/grade"
	"github.com/trezcool/schooladmin/core/year"
)

var (
	ErrNotEditing     = errors.New("no student is being edited")
	ErrEditing        = errors.New("finish or cancel the current student first")
	ErrNoElectives    = errors.New("this grade has no elective subjects")
	ErrNotAllMode     = errors.New("skipping is only available while assigning to all pending students")
	ErrNothingPending = errors.New("every student already holds all their elective subjects")
	ErrUnknownYear    = errors.New("unknown academic year")
)

type (
	Repository interface {
		// QueryStudents returns the students in scope with all their assignments.
		QueryStudents(ctx context.Context) ([]Student, error)
		QueryByStudent(ctx context.Context, studentID int) ([]Assignment, error)
		Create(ctx context.Context, studentID int, na NewAssignment) (Assignment, error)
		Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error)
		Delete(ctx context.Context, id int) error
	}

	// GradeSource gives the grade the operator administers with its elective catalog.
	GradeSource interface {
		Mine(ctx context.Context) (grade.WithElectiveSubjects, error)
	}

	// YearSource lists the academic years.
	YearSource interface {
		QueryAll(ctx context.Context) ([]year.Year, error)
	}
)

// Mode is the screen the workflow is on.
type Mode int

const (
	ModeList Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "list"
}

// SaveError reports a save that stopped part way. The first Saved slots were written and stay so.
type SaveError struct {
	Saved int
	Total int
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("saved %d of %d elective subjects: %v", e.Saved, e.Total, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Workflow walks an operator through assigning exactly K elective subjects to students, one
// student at a time or through the queue of pending students ("assign to all").
// It is not safe for concurrent use.
type Workflow struct {
	repo   Repository
	grades GradeSource
	years  YearSource
	logger core.Logger

	grade    grade.WithElectiveSubjects
	yearList []year.Year
	year     string
	students []Student

	mode        Mode
	current     Student
	sessionYear string
	slots       Slots
	baseline    Slots // slots as last known to the backend

	allMode bool
	queue   []Student
	pos     int
}

func NewWorkflow(repo Repository, grades GradeSource, years YearSource, logger core.Logger) *Workflow {
	return &Workflow{
		repo:   repo,
		grades: grades,
		years:  years,
		logger: logger,
	}
}

// Load fetches the grade context, the years (selecting the current one) and the students.
func (w *Workflow) Load(ctx context.Context) error {
	g, err := w.grades.Mine(ctx)
	if err != nil {
		return errors.Wrap(err, "loading grade")
	}
	w.grade = g

	years, err := w.years.QueryAll(ctx)
	if err != nil {
		return errors.Wrap(err, "loading years")
	}
	w.yearList = years
	if w.year == "" || !w.knownYear(w.year) {
		if y, ok := year.Default(years); ok {
			w.year = y.Label
		}
	}
	return w.Refresh(ctx)
}

// Refresh refetches the students.
func (w *Workflow) Refresh(ctx context.Context) error {
	students, err := w.repo.QueryStudents(ctx)
	if err != nil {
		return errors.Wrap(err, "loading students")
	}
	w.students = students
	return nil
}

// SetYear selects another academic year and refetches the students.
// The year of a student being edited is frozen, so this only works on the list.
func (w *Workflow) SetYear(ctx context.Context, label string) error {
	if w.mode == ModeEditing {
		return ErrEditing
	}
	label = core.CleanString(label)
	if !w.knownYear(label) {
		return core.NewValidationError(errors.Wrap(ErrUnknownYear, label))
	}
	w.year = label
	return w.Refresh(ctx)
}

func (w *Workflow) knownYear(label string) bool {
	for _, y := range w.yearList {
		if y.Label == label {
			return true
		}
	}
	return false
}

func (w *Workflow) Grade() grade.WithElectiveSubjects { return w.grade }

// K returns the number of elective subjects a student holds per year.
func (w *Workflow) K() int { return w.grade.ElectiveSlots() }

func (w *Workflow) Years() []year.Year { return w.yearList }

// Year returns the year selected on the list.
func (w *Workflow) Year() string { return w.year }

func (w *Workflow) Students() []Student { return w.students }

func (w *Workflow) Mode() Mode { return w.mode }

func (w *Workflow) AllMode() bool { return w.allMode }

// Student looks a student of the list up by ID.
func (w *Workflow) Student(id int) (Student, bool) {
	for _, st := range w.students {
		if st.ID == id {
			return st, true
		}
	}
	return Student{}, false
}

// HasAssignment reports whether st holds at least one elective subject for the selected year.
func (w *Workflow) HasAssignment(st Student) bool {
	return st.CountForYear(w.year) > 0
}

// Pending returns the students holding fewer than K elective subjects for the selected year.
func (w *Workflow) Pending() []Student {
	k := w.K()
	var pending []Student
	for _, st := range w.students {
		if st.CountForYear(w.year) < k {
			pending = append(pending, st)
		}
	}
	return pending
}

// Current returns the student being edited.
func (w *Workflow) Current() (Student, bool) {
	return w.current, w.mode == ModeEditing
}

// SessionYear returns the year the edited student's subjects are saved under.
func (w *Workflow) SessionYear() string { return w.sessionYear }

// Slots returns a copy of the edited student's slots.
func (w *Workflow) Slots() Slots { return w.slots.clone() }

// CanSave reports whether exactly K slots are filled.
func (w *Workflow) CanSave() bool {
	return w.mode == ModeEditing && w.slots.Count() == w.K()
}

// Progress returns the 1-based position of the edited student in the pending queue and the queue length.
func (w *Workflow) Progress() (int, int) {
	if !w.allMode {
		return 0, 0
	}
	return w.pos + 1, len(w.queue)
}

// Start begins editing st alone.
func (w *Workflow) Start(st Student) error {
	if w.mode == ModeEditing {
		return ErrEditing
	}
	if w.K() == 0 {
		return ErrNoElectives
	}
	w.allMode = false
	w.queue = nil
	w.pos = 0
	w.enter(st)
	return nil
}

// StartAll snapshots the pending students and begins editing the first one.
func (w *Workflow) StartAll() error {
	if w.mode == ModeEditing {
		return ErrEditing
	}
	if w.K() == 0 {
		return ErrNoElectives
	}
	queue := w.Pending()
	if len(queue) == 0 {
		return ErrNothingPending
	}
	w.allMode = true
	w.queue = queue
	w.pos = 0
	w.enter(queue[0])
	return nil
}

func (w *Workflow) enter(st Student) {
	slots, dropped := NewSlots(w.K(), st.Electives, w.year)
	if dropped > 0 && w.logger != nil {
		w.logger.Warn(fmt.Sprintf(
			"student %s holds %d elective subjects for %s; %d not shown",
			st.Roll, len(st.ForYear(w.year)), w.year, dropped,
		))
	}
	w.mode = ModeEditing
	w.current = st
	w.sessionYear = w.year
	w.slots = slots
	w.baseline = slots.clone()
}

// Select fills the first empty slot with subID.
func (w *Workflow) Select(subID int) error {
	if w.mode != ModeEditing {
		return ErrNotEditing
	}
	if !w.grade.HasElectiveSubject(subID) {
		return core.NewValidationError(errors.Errorf("subject %d is not an elective subject of %s", subID, w.grade.Code))
	}
	return w.slots.Select(subID)
}

// Deselect empties the slot holding subID.
func (w *Workflow) Deselect(subID int) error {
	if w.mode != ModeEditing {
		return ErrNotEditing
	}
	w.slots.Deselect(subID)
	return nil
}

// Toggle deselects subID when selected and selects it otherwise.
func (w *Workflow) Toggle(subID int) error {
	if w.mode != ModeEditing {
		return ErrNotEditing
	}
	if w.slots.Contains(subID) {
		return w.Deselect(subID)
	}
	return w.Select(subID)
}

// Save writes the slots one after the other in slot order: persisted slots whose subject changed
// are updated, the others created. Unchanged slots are left alone. The first failure stops the
// loop and nothing is rolled back; created slots keep their new IDs so saving again updates them.
// Once saved, an all-mode session moves on to the next pending student; otherwise, or when the
// queue is exhausted, the workflow goes back to the list and refreshes it.
func (w *Workflow) Save(ctx context.Context) error {
	if w.mode != ModeEditing {
		return ErrNotEditing
	}
	k := w.K()
	if w.slots.Count() != k {
		return CountError(k)
	}

	var saved int
	for i, slot := range w.slots {
		if slot.Empty() {
			continue
		}
		if slot.Persisted() && w.baseline[i] == slot {
			saved++
			continue
		}
		if slot.Persisted() {
			_, err := w.repo.Update(ctx, slot.AssignmentID, UpdateAssignment{
				ID:        slot.AssignmentID,
				SubjectID: slot.SubjectID,
				Year:      w.sessionYear,
				StudentID: w.current.ID,
			})
			if err != nil {
				return &SaveError{Saved: saved, Total: k, Err: errors.Wrapf(err, "updating elective %d", slot.AssignmentID)}
			}
		} else {
			created, err := w.repo.Create(ctx, w.current.ID, NewAssignment{
				StudentID: w.current.ID,
				SubjectID: slot.SubjectID,
				Year:      w.sessionYear,
			})
			if err != nil {
				return &SaveError{Saved: saved, Total: k, Err: errors.Wrap(err, "creating elective")}
			}
			w.slots[i].AssignmentID = created.ID
		}
		w.baseline[i] = w.slots[i]
		saved++
	}
	return w.advance(ctx)
}

// Skip moves on to the next pending student without saving.
func (w *Workflow) Skip(ctx context.Context) error {
	if w.mode != ModeEditing {
		return ErrNotEditing
	}
	if !w.allMode {
		return ErrNotAllMode
	}
	return w.advance(ctx)
}

// Cancel drops the slot edits and goes back to the list.
func (w *Workflow) Cancel() {
	w.reset()
}

func (w *Workflow) advance(ctx context.Context) error {
	if w.allMode && w.pos+1 < len(w.queue) {
		w.pos++
		w.enter(w.queue[w.pos])
		return nil
	}
	w.reset()
	return w.Refresh(ctx)
}

func (w *Workflow) reset() {
	w.mode = ModeList
	w.current = Student{}
	w.sessionYear = ""
	w.slots = nil
	w.baseline = nil
	w.allMode = false
	w.queue = nil
	w.pos = 0
}
