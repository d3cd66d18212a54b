package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lab-scheduler/internal/model"
	"lab-scheduler/internal/repository"
	pkgerrors "lab-scheduler/pkg/errors"
)

// 模拟部分唯一索引冲突
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// ── Mock LabRoomRepository ──

type mockLabRoomRepo struct {
	rooms map[string]*model.LabRoom
}

func newMockLabRoomRepo() *mockLabRoomRepo {
	return &mockLabRoomRepo{rooms: make(map[string]*model.LabRoom)}
}

func (m *mockLabRoomRepo) Create(_ context.Context, room *model.LabRoom) error {
	if room.LabRoomID == "" {
		room.LabRoomID = fmt.Sprintf("room-%d", len(m.rooms)+1)
	}
	room.CreatedAt, room.UpdatedAt = time.Now(), time.Now()
	cp := *room
	m.rooms[room.LabRoomID] = &cp
	return nil
}

func (m *mockLabRoomRepo) GetByID(_ context.Context, id string) (*model.LabRoom, error) {
	if r, ok := m.rooms[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabRoomRepo) List(_ context.Context, includeInactive bool) ([]model.LabRoom, error) {
	var result []model.LabRoom
	for _, r := range m.rooms {
		if includeInactive || r.Status.IsActive() {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockLabRoomRepo) Update(_ context.Context, room *model.LabRoom) error {
	cp := *room
	m.rooms[room.LabRoomID] = &cp
	return nil
}

func (m *mockLabRoomRepo) Retire(_ context.Context, id string, _ string) error {
	if r, ok := m.rooms[id]; ok {
		r.Status = model.StatusInactive
	}
	return nil
}

func (m *mockLabRoomRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, r := range m.rooms {
		if r.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

// ── Mock LabAssistantRepository ──

type mockLabAssistantRepo struct {
	assistants map[string]*model.LabAssistant
	seq        int
	// beforeCreate 在 Create 前调用一次，用于模拟并发分配抢号
	beforeCreate func(m *mockLabAssistantRepo)
	listErr      error
}

func newMockLabAssistantRepo() *mockLabAssistantRepo {
	return &mockLabAssistantRepo{assistants: make(map[string]*model.LabAssistant)}
}

func (m *mockLabAssistantRepo) put(a *model.LabAssistant) {
	m.seq++
	if a.AssistantID == "" {
		a.AssistantID = fmt.Sprintf("asst-%d", m.seq)
	}
	cp := *a
	m.assistants[a.AssistantID] = &cp
}

func (m *mockLabAssistantRepo) Create(_ context.Context, a *model.LabAssistant) error {
	if hook := m.beforeCreate; hook != nil {
		m.beforeCreate = nil
		hook(m)
	}
	for _, existing := range m.assistants {
		if existing.Status.IsActive() && a.Status.IsActive() && existing.LabAssistantID == a.LabAssistantID {
			return uniqueViolation("uk_lab_assistants_active_business_key")
		}
	}
	a.CreatedAt, a.UpdatedAt = time.Now(), time.Now()
	m.put(a)
	return nil
}

func (m *mockLabAssistantRepo) GetByID(_ context.Context, id string) (*model.LabAssistant, error) {
	if a, ok := m.assistants[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabAssistantRepo) GetActiveByLabAssistantID(_ context.Context, labAssistantID string) (*model.LabAssistant, error) {
	for _, a := range m.assistants {
		if a.LabAssistantID == labAssistantID && a.Status.IsActive() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLabAssistantRepo) ExistsLabAssistantID(_ context.Context, labAssistantID string) (bool, error) {
	for _, a := range m.assistants {
		if a.LabAssistantID == labAssistantID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLabAssistantRepo) ListLabAssistantIDs(_ context.Context, prefix string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var ids []string
	for _, a := range m.assistants {
		if strings.HasPrefix(a.LabAssistantID, prefix) {
			ids = append(ids, a.LabAssistantID)
		}
	}
	return ids, nil
}

func (m *mockLabAssistantRepo) List(_ context.Context, includeInactive bool) ([]model.LabAssistant, error) {
	var result []model.LabAssistant
	for _, a := range m.assistants {
		if includeInactive || a.Status.IsActive() {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LabAssistantID < result[j].LabAssistantID })
	return result, nil
}

func (m *mockLabAssistantRepo) Update(_ context.Context, a *model.LabAssistant) error {
	cp := *a
	m.assistants[a.AssistantID] = &cp
	return nil
}

func (m *mockLabAssistantRepo) UpdatePassword(_ context.Context, id, passwordHash, _ string) error {
	if a, ok := m.assistants[id]; ok {
		a.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockLabAssistantRepo) Retire(_ context.Context, id string, _ string) error {
	if a, ok := m.assistants[id]; ok {
		a.Status = model.StatusInactive
	}
	return nil
}

func (m *mockLabAssistantRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, a := range m.assistants {
		if a.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	if c.CourseID == "" {
		c.CourseID = fmt.Sprintf("course-%d", len(m.courses)+1)
	}
	cp := *c
	m.courses[c.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, includeInactive bool) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if includeInactive || c.Status.IsActive() {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	cp := *c
	m.courses[c.CourseID] = &cp
	return nil
}

func (m *mockCourseRepo) Retire(_ context.Context, id string, _ string) error {
	if c, ok := m.courses[id]; ok {
		c.Status = model.StatusInactive
	}
	return nil
}

func (m *mockCourseRepo) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, c := range m.courses {
		if c.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

// ── Mock SectionRepository / GroupRepository ──

type mockSectionRepo struct {
	sections map[string]*model.Section
	groups   *mockGroupRepo
}

func newMockSectionRepo(groups *mockGroupRepo) *mockSectionRepo {
	return &mockSectionRepo{sections: make(map[string]*model.Section), groups: groups}
}

func (m *mockSectionRepo) Create(_ context.Context, s *model.Section) error {
	if s.SectionID == "" {
		s.SectionID = fmt.Sprintf("section-%d", len(m.sections)+1)
	}
	cp := *s
	cp.Groups = nil
	m.sections[s.SectionID] = &cp
	return nil
}

func (m *mockSectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	s, ok := m.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	cp.Groups, _ = m.groups.ListBySection(ctx, id, false)
	return &cp, nil
}

func (m *mockSectionRepo) List(ctx context.Context, includeInactive bool) ([]model.Section, error) {
	var result []model.Section
	for id, s := range m.sections {
		if includeInactive || s.Status.IsActive() {
			cp := *s
			cp.Groups, _ = m.groups.ListBySection(ctx, id, false)
			result = append(result, cp)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) Update(_ context.Context, s *model.Section) error {
	cp := *s
	cp.Groups = nil
	m.sections[s.SectionID] = &cp
	return nil
}

func (m *mockSectionRepo) Retire(_ context.Context, id string, _ string) error {
	if s, ok := m.sections[id]; ok {
		s.Status = model.StatusInactive
	}
	return nil
}

type mockGroupRepo struct {
	groups map[string]*model.Group
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, g *model.Group) error {
	if g.GroupID == "" {
		g.GroupID = fmt.Sprintf("group-%d", len(m.groups)+1)
	}
	cp := *g
	m.groups[g.GroupID] = &cp
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) ListBySection(_ context.Context, sectionID string, includeInactive bool) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		if g.SectionID == sectionID && (includeInactive || g.Status.IsActive()) {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, g *model.Group) error {
	cp := *g
	m.groups[g.GroupID] = &cp
	return nil
}

func (m *mockGroupRepo) Retire(_ context.Context, id string, _ string) error {
	if g, ok := m.groups[id]; ok {
		g.Status = model.StatusInactive
	}
	return nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots map[string]*model.TimeSlot
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) Create(_ context.Context, slot *model.TimeSlot) error {
	if slot.TimeSlotID == "" {
		slot.TimeSlotID = fmt.Sprintf("slot-%d", len(m.slots)+1)
	}
	cp := *slot
	m.slots[slot.TimeSlotID] = &cp
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if s, ok := m.slots[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context, includeInactive bool, day *model.DayOfWeek) ([]model.TimeSlot, error) {
	var result []model.TimeSlot
	for _, s := range m.slots {
		if !includeInactive && !s.Status.IsActive() {
			continue
		}
		if day != nil && s.DayOfWeek != *day {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek.Index() < result[j].DayOfWeek.Index()
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockTimeSlotRepo) Update(_ context.Context, slot *model.TimeSlot) error {
	cp := *slot
	m.slots[slot.TimeSlotID] = &cp
	return nil
}

func (m *mockTimeSlotRepo) Retire(_ context.Context, id string, _ string) error {
	if s, ok := m.slots[id]; ok {
		s.Status = model.StatusInactive
	}
	return nil
}

// ── Mock AssignmentRepository ──
//
// 与数据库一致地维护两个 active 部分唯一索引，并发写入时返回 23505。

type mockAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]*model.ScheduleAssignment
	seq         int

	// 关联数据源，供 ListDetailed / GetDetailByID 预加载
	courses    *mockCourseRepo
	sections   *mockSectionRepo
	groups     *mockGroupRepo
	rooms      *mockLabRoomRepo
	assistants *mockLabAssistantRepo
	slots      *mockTimeSlotRepo

	// updateErrs 依次作为 Update 的返回值（模拟乐观锁 / 序列化失败）
	updateErrs []error
	findErr    error
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.ScheduleAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.Status.IsActive() {
		for _, e := range m.assignments {
			if !e.Status.IsActive() || e.TimeSlotID != a.TimeSlotID {
				continue
			}
			if e.LabRoomID == a.LabRoomID {
				return uniqueViolation("uk_schedule_assignments_active_room_slot")
			}
			if e.LabAssistantID == a.LabAssistantID {
				return uniqueViolation("uk_schedule_assignments_active_assistant_slot")
			}
		}
	}

	m.seq++
	if a.ScheduleAssignmentID == "" {
		a.ScheduleAssignmentID = fmt.Sprintf("asg-%d", m.seq)
	}
	a.Version = 1
	a.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.assignments[a.ScheduleAssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.ScheduleAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) LockByID(ctx context.Context, id string) (*model.ScheduleAssignment, error) {
	return m.GetByID(ctx, id)
}

func (m *mockAssignmentRepo) GetDetailByID(ctx context.Context, id string) (*model.ScheduleAssignment, error) {
	a, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.preload(ctx, a)
	return a, nil
}

func (m *mockAssignmentRepo) FindConflicts(_ context.Context, c repository.ConflictCandidate, excludeID string) ([]model.ScheduleAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}

	var result []model.ScheduleAssignment
	for _, a := range m.assignments {
		if !a.Status.IsActive() || a.TimeSlotID != c.TimeSlotID || a.ScheduleAssignmentID == excludeID {
			continue
		}
		if a.LabRoomID == c.LabRoomID || a.LabAssistantID == c.LabAssistantID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.ScheduleAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.updateErrs) > 0 {
		err := m.updateErrs[0]
		m.updateErrs = m.updateErrs[1:]
		if err != nil {
			return err
		}
	}

	stored, ok := m.assignments[a.ScheduleAssignmentID]
	if !ok || stored.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for id, e := range m.assignments {
		if id == a.ScheduleAssignmentID || !e.Status.IsActive() || e.TimeSlotID != a.TimeSlotID {
			continue
		}
		if e.LabRoomID == a.LabRoomID || e.LabAssistantID == a.LabAssistantID {
			return uniqueViolation("uk_schedule_assignments_active_room_slot")
		}
	}

	a.Version++
	cp := *a
	m.assignments[a.ScheduleAssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) Retire(_ context.Context, a *model.ScheduleAssignment, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.assignments[a.ScheduleAssignmentID]
	if !ok || stored.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = model.StatusInactive
	stored.Version++
	a.Status = model.StatusInactive
	a.Version = stored.Version
	return nil
}

func (m *mockAssignmentRepo) ListDetailed(ctx context.Context, filter repository.AssignmentFilter) ([]model.ScheduleAssignment, error) {
	m.mu.Lock()
	var result []model.ScheduleAssignment
	for _, a := range m.assignments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.LabAssistantID != "" && a.LabAssistantID != filter.LabAssistantID {
			continue
		}
		result = append(result, *a)
	}
	m.mu.Unlock()

	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	for i := range result {
		m.preload(ctx, &result[i])
	}
	return result, nil
}

func (m *mockAssignmentRepo) CountActive(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, a := range m.assignments {
		if a.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (m *mockAssignmentRepo) preload(ctx context.Context, a *model.ScheduleAssignment) {
	a.Course, _ = m.courses.GetByID(ctx, a.CourseID)
	a.Section, _ = m.sections.GetByID(ctx, a.SectionID)
	if a.GroupID != nil {
		a.Group, _ = m.groups.GetByID(ctx, *a.GroupID)
	}
	a.LabRoom, _ = m.rooms.GetByID(ctx, a.LabRoomID)
	a.LabAssistant, _ = m.assistants.GetActiveByLabAssistantID(ctx, a.LabAssistantID)
	a.TimeSlot, _ = m.slots.GetByID(ctx, a.TimeSlotID)
}

// failingAssignmentRepo 列表查询固定失败
type failingAssignmentRepo struct {
	*mockAssignmentRepo
}

func (failingAssignmentRepo) ListDetailed(context.Context, repository.AssignmentFilter) ([]model.ScheduleAssignment, error) {
	return nil, errors.New("connection reset by peer")
}

// ── 测试夹具 ──

type mockStore struct {
	repo        *repository.Repository
	rooms       *mockLabRoomRepo
	assistants  *mockLabAssistantRepo
	courses     *mockCourseRepo
	sections    *mockSectionRepo
	groups      *mockGroupRepo
	slots       *mockTimeSlotRepo
	assignments *mockAssignmentRepo
}

func newMockStore() *mockStore {
	s := &mockStore{
		rooms:      newMockLabRoomRepo(),
		assistants: newMockLabAssistantRepo(),
		courses:    newMockCourseRepo(),
		groups:     newMockGroupRepo(),
		slots:      newMockTimeSlotRepo(),
	}
	s.sections = newMockSectionRepo(s.groups)
	s.assignments = &mockAssignmentRepo{
		assignments: make(map[string]*model.ScheduleAssignment),
		courses:     s.courses,
		sections:    s.sections,
		groups:      s.groups,
		rooms:       s.rooms,
		assistants:  s.assistants,
		slots:       s.slots,
	}
	s.repo = &repository.Repository{
		LabRoom:      s.rooms,
		LabAssistant: s.assistants,
		Course:       s.courses,
		Section:      s.sections,
		Group:        s.groups,
		TimeSlot:     s.slots,
		Assignment:   s.assignments,
	}
	return s
}

// seedScheduling 预置一套可排课的基础数据
//
//	课程 C1；教学班 SEC1（分组 G1）、SEC2（分组 G2）；实验室 R1、R2；
//	助教 LA2024001(T1)、LA2024002(T2)；时间段 S1（周一 08:00-10:00）、S2（周三 14:00-16:00）
func (s *mockStore) seedScheduling() {
	s.courses.courses["C1"] = &model.Course{CourseID: "C1", Code: "CS301", Name: "操作系统实验", Credits: 3, Year: 3, StudentType: model.StudentRegular, Status: model.StatusActive}
	s.sections.sections["SEC1"] = &model.Section{SectionID: "SEC1", Name: "CS-3A", Year: 3, Capacity: 40, Status: model.StatusActive}
	s.sections.sections["SEC2"] = &model.Section{SectionID: "SEC2", Name: "CS-3B", Year: 3, Capacity: 40, Status: model.StatusActive}
	s.groups.groups["G1"] = &model.Group{GroupID: "G1", Name: "A组", SectionID: "SEC1", Capacity: 20, Status: model.StatusActive}
	s.groups.groups["G2"] = &model.Group{GroupID: "G2", Name: "B组", SectionID: "SEC2", Capacity: 20, Status: model.StatusActive}
	s.rooms.rooms["R1"] = &model.LabRoom{LabRoomID: "R1", Name: "实验楼 101", Capacity: 30, Status: model.StatusActive}
	s.rooms.rooms["R2"] = &model.LabRoom{LabRoomID: "R2", Name: "实验楼 102", Capacity: 30, Status: model.StatusActive}
	s.assistants.assistants["a1"] = &model.LabAssistant{AssistantID: "a1", LabAssistantID: "LA2024001", FirstName: "Ada", LastName: "Lovelace", Email: "ada@lab.edu", Status: model.StatusActive}
	s.assistants.assistants["a2"] = &model.LabAssistant{AssistantID: "a2", LabAssistantID: "LA2024002", FirstName: "Alan", LastName: "Turing", Email: "alan@lab.edu", Status: model.StatusActive}
	s.slots.slots["S1"] = &model.TimeSlot{TimeSlotID: "S1", DayOfWeek: model.Monday, StartTime: "08:00", EndTime: "10:00", SlotType: model.SlotLab, Status: model.StatusActive}
	s.slots.slots["S2"] = &model.TimeSlot{TimeSlotID: "S2", DayOfWeek: model.Wednesday, StartTime: "14:00", EndTime: "16:00", SlotType: model.SlotLab, Status: model.StatusActive}
}

func nopLogger() *zap.Logger { return zap.NewNop() }
