package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/models"
)

// deletePlan collects every row a delete removes and the files those rows
// own. Rows are deleted children first so foreign keys hold at every step.
type deletePlan struct {
	departmentID  *int
	userID        *uint
	facultyIDs    []int
	studentIDs    []int
	courseCodes   []int
	assignmentIDs []uint
	submissionIDs []uint
	materialIDs   []uint
	files         []string

	seenSubmissions map[uint]struct{}
}

func newDeletePlan() *deletePlan {
	return &deletePlan{seenSubmissions: make(map[uint]struct{})}
}

func (p *deletePlan) addFiles(owner models.FileOwner) {
	p.files = append(p.files, owner.StoredFiles()...)
}

func (p *deletePlan) addSubmissions(submissions []*models.Submission) {
	for _, s := range submissions {
		if _, ok := p.seenSubmissions[s.ID]; ok {
			continue
		}
		p.seenSubmissions[s.ID] = struct{}{}
		p.submissionIDs = append(p.submissionIDs, s.ID)
		p.addFiles(s)
	}
}

func (p *deletePlan) eventData() map[string]interface{} {
	return map[string]interface{}{
		"students":    len(p.studentIDs),
		"faculty":     len(p.facultyIDs),
		"courses":     len(p.courseCodes),
		"assignments": len(p.assignmentIDs),
		"submissions": len(p.submissionIDs),
		"materials":   len(p.materialIDs),
		"files":       len(p.files),
	}
}

// ===== PLANNING =====

func (d *serviceDeps) planDepartment(ctx context.Context, tx *gorm.DB, plan *deletePlan, departmentID int) error {
	plan.departmentID = &departmentID

	students, err := d.repo.Student().ListByDepartment(ctx, tx, departmentID)
	if err != nil {
		return err
	}
	if err := d.planStudents(ctx, tx, plan, students); err != nil {
		return err
	}

	faculty, err := d.repo.Faculty().ListByDepartment(ctx, tx, departmentID)
	if err != nil {
		return err
	}
	d.planFaculty(plan, faculty)

	codes, err := d.repo.Course().ListCodesByDepartment(ctx, tx, departmentID)
	if err != nil {
		return err
	}
	return d.planCourses(ctx, tx, plan, codes)
}

func (d *serviceDeps) planStudents(ctx context.Context, tx *gorm.DB, plan *deletePlan, students []*models.Student) error {
	if len(students) == 0 {
		return nil
	}
	ids := make([]int, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
		plan.addFiles(s)
	}
	plan.studentIDs = append(plan.studentIDs, ids...)

	submissions, err := d.repo.Submission().ListByStudents(ctx, tx, ids)
	if err != nil {
		return err
	}
	plan.addSubmissions(submissions)
	return nil
}

func (d *serviceDeps) planFaculty(plan *deletePlan, faculty []*models.Faculty) {
	for _, f := range faculty {
		plan.facultyIDs = append(plan.facultyIDs, f.ID)
		plan.addFiles(f)
	}
}

func (d *serviceDeps) planCourses(ctx context.Context, tx *gorm.DB, plan *deletePlan, codes []int) error {
	if len(codes) == 0 {
		return nil
	}
	plan.courseCodes = append(plan.courseCodes, codes...)

	assignments, err := d.repo.Assignment().ListByCourses(ctx, tx, codes)
	if err != nil {
		return err
	}
	if err := d.planAssignments(ctx, tx, plan, assignments); err != nil {
		return err
	}

	materials, err := d.repo.Material().ListByCourses(ctx, tx, codes)
	if err != nil {
		return err
	}
	d.planMaterials(plan, materials)
	return nil
}

func (d *serviceDeps) planAssignments(ctx context.Context, tx *gorm.DB, plan *deletePlan, assignments []*models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
		plan.addFiles(a)
	}
	plan.assignmentIDs = append(plan.assignmentIDs, ids...)

	submissions, err := d.repo.Submission().ListByAssignments(ctx, tx, ids)
	if err != nil {
		return err
	}
	plan.addSubmissions(submissions)
	return nil
}

func (d *serviceDeps) planMaterials(plan *deletePlan, materials []*models.Material) {
	for _, m := range materials {
		plan.materialIDs = append(plan.materialIDs, m.ID)
		plan.addFiles(m)
	}
}

// ===== EXECUTION =====

// executePlan deletes the planned rows and then removes their files. It
// runs inside the caller's transaction, so a storage failure rolls the rows
// back.
func (d *serviceDeps) executePlan(ctx context.Context, tx *gorm.DB, plan *deletePlan) error {
	if err := d.repo.Submission().DeleteByIDs(ctx, tx, plan.submissionIDs); err != nil {
		return err
	}
	if err := d.repo.Assignment().DeleteByIDs(ctx, tx, plan.assignmentIDs); err != nil {
		return err
	}
	if err := d.repo.Material().DeleteByIDs(ctx, tx, plan.materialIDs); err != nil {
		return err
	}
	if err := d.repo.Announcement().DeleteByCourses(ctx, tx, plan.courseCodes); err != nil {
		return err
	}
	if err := d.repo.Payment().DeleteByCourses(ctx, tx, plan.courseCodes); err != nil {
		return err
	}
	if err := d.repo.Course().ClearEnrollments(ctx, tx, plan.courseCodes); err != nil {
		return err
	}
	if err := d.repo.Student().ClearEnrollments(ctx, tx, plan.studentIDs); err != nil {
		return err
	}

	// Courses outside the plan keep their row and lose the faculty
	if _, err := d.repo.Course().ClearFaculty(ctx, tx, plan.facultyIDs); err != nil {
		return err
	}
	if err := d.repo.Course().DeleteByCodes(ctx, tx, plan.courseCodes); err != nil {
		return err
	}
	if err := d.repo.Student().DeleteByIDs(ctx, tx, plan.studentIDs); err != nil {
		return err
	}
	if err := d.repo.Faculty().DeleteByIDs(ctx, tx, plan.facultyIDs); err != nil {
		return err
	}
	if plan.departmentID != nil {
		if err := d.repo.Department().Delete(ctx, tx, *plan.departmentID); err != nil {
			return err
		}
	}
	if plan.userID != nil {
		if err := d.repo.User().Delete(ctx, tx, *plan.userID); err != nil {
			return err
		}
	}

	return d.removeFiles(ctx, plan.files)
}

// runDelete builds a plan inside a transaction, executes it and publishes
// record.deleted once committed
func (d *serviceDeps) runDelete(ctx context.Context, entity string, id interface{}, build func(tx *gorm.DB, plan *deletePlan) error) error {
	d.logger.Info("Deleting record", "entity", entity, "id", id)

	plan := newDeletePlan()
	err := d.withTx(ctx, func(tx *gorm.DB) error {
		if err := build(tx, plan); err != nil {
			return err
		}
		return d.executePlan(ctx, tx, plan)
	})
	if err != nil {
		d.logger.Error("Failed to delete record", "entity", entity, "id", id, "error", err)
		return translateRepoError(err, entity, id)
	}

	if len(plan.courseCodes) > 0 || len(plan.facultyIDs) > 0 {
		d.invalidateCourses(ctx)
	}
	if plan.departmentID != nil {
		d.invalidateDepartment(ctx, *plan.departmentID)
	}

	d.logger.Info("Record deleted successfully",
		"entity", entity,
		"id", id,
		"files", len(plan.files))

	d.publish(ctx, events.TopicRecordDeleted, events.NewEvent("deleted", entity, id, plan.eventData()))
	return nil
}

// requireFound turns a missing parent into a NotFoundError for that parent
func requireFound(exists bool, err error, entity string, id interface{}) error {
	if err != nil {
		return fmt.Errorf("check %s exists: %w", entity, err)
	}
	if !exists {
		return NewNotFoundError(entity, id)
	}
	return nil
}
