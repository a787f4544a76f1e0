package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qaidjoharj53/Job-Portal/internal/model"
	"github.com/qaidjoharj53/Job-Portal/internal/repository"
	pkgerrors "github.com/qaidjoharj53/Job-Portal/pkg/errors"
)

// ── 内存数据源 ──
// 所有 mock repository 共享同一份数据，模拟关联预加载与唯一约束

type memStore struct {
	mu       sync.Mutex
	colleges map[string]*model.College
	users    map[string]*model.User
	jobs     map[string]*model.Job
	apps     map[string]*model.Application
	clock    time.Time

	// failErr 非空时所有读写返回该错误，模拟存储故障
	failErr error
}

func newMemStore() *memStore {
	return &memStore{
		colleges: make(map[string]*model.College),
		users:    make(map[string]*model.User),
		jobs:     make(map[string]*model.Job),
		apps:     make(map[string]*model.Application),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick 单调递增的时间戳，保证排序稳定
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func duplicate(constraint string) error {
	return &pkgerrors.DuplicateKeyError{Constraint: constraint, Err: errors.New("duplicate key value violates unique constraint")}
}

func newMockRepository(store *memStore) *repository.Repository {
	return &repository.Repository{
		College:     &mockCollegeRepo{s: store},
		User:        &mockUserRepo{s: store},
		Job:         &mockJobRepo{s: store},
		Application: &mockApplicationRepo{s: store},
	}
}

// ── Mock CollegeRepository ──

type mockCollegeRepo struct{ s *memStore }

func (m *mockCollegeRepo) Create(_ context.Context, college *model.College) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return m.s.failErr
	}
	return m.s.insertCollege(college)
}

func (s *memStore) insertCollege(college *model.College) error {
	for _, c := range s.colleges {
		if c.Name == college.Name {
			return duplicate(repository.ConstraintCollegeName)
		}
	}
	if college.CollegeID == "" {
		college.CollegeID = uuid.NewString()
	}
	college.CreatedAt = s.tick()
	cp := *college
	s.colleges[college.CollegeID] = &cp
	return nil
}

func (m *mockCollegeRepo) GetByID(_ context.Context, id string) (*model.College, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	c, ok := m.s.colleges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCollegeRepo) List(_ context.Context) ([]model.College, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	result := make([]model.College, 0, len(m.s.colleges))
	for _, c := range m.s.colleges {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return m.s.failErr
	}
	return m.s.insertUser(user)
}

func (s *memStore) insertUser(user *model.User) error {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return duplicate(repository.ConstraintUserEmail)
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	user.CreatedAt = s.tick()
	cp := *user
	cp.College = nil
	s.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) CreateWithCollege(_ context.Context, user *model.User, college *model.College) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return m.s.failErr
	}
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return duplicate(repository.ConstraintUserEmail)
		}
	}
	if err := m.s.insertCollege(college); err != nil {
		return err
	}
	user.CollegeID = &college.CollegeID
	return m.s.insertUser(user)
}

func (s *memStore) userWithCollege(u *model.User) *model.User {
	cp := *u
	if u.CollegeID != nil {
		if c, ok := s.colleges[*u.CollegeID]; ok {
			college := *c
			cp.College = &college
		}
	}
	return &cp
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	u, ok := m.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.s.userWithCollege(u), nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, email) {
			return m.s.userWithCollege(u), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsAdminWithEmailSuffix(_ context.Context, suffix string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return false, m.s.failErr
	}
	suffix = strings.ToLower(suffix)
	for _, u := range m.s.users {
		if u.Role == model.RoleAdmin && strings.HasSuffix(strings.ToLower(u.Email), suffix) {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock JobRepository ──

type mockJobRepo struct{ s *memStore }

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return m.s.failErr
	}
	if job.JobID == "" {
		job.JobID = uuid.NewString()
	}
	job.CreatedAt = m.s.tick()
	cp := *job
	cp.College, cp.Poster = nil, nil
	m.s.jobs[job.JobID] = &cp
	return nil
}

func (s *memStore) jobWithRelations(j *model.Job) *model.Job {
	cp := *j
	if c, ok := s.colleges[j.CollegeID]; ok {
		college := *c
		cp.College = &college
	}
	if u, ok := s.users[j.PostedBy]; ok {
		poster := *u
		cp.Poster = &poster
	}
	return &cp
}

func (m *mockJobRepo) GetByID(_ context.Context, id string) (*model.Job, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	j, ok := m.s.jobs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.s.jobWithRelations(j), nil
}

func (m *mockJobRepo) GetByIDForCollege(_ context.Context, id, collegeID string) (*model.Job, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	j, ok := m.s.jobs[id]
	if !ok || j.CollegeID != collegeID {
		return nil, gorm.ErrRecordNotFound
	}
	return m.s.jobWithRelations(j), nil
}

func (m *mockJobRepo) ListByCollege(_ context.Context, collegeID string) ([]model.Job, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	var result []model.Job
	for _, j := range m.s.jobs {
		if j.CollegeID == collegeID {
			result = append(result, *m.s.jobWithRelations(j))
		}
	}
	sort.Slice(result, func(i, k int) bool { return result[i].CreatedAt.After(result[k].CreatedAt) })
	return result, nil
}

// ── Mock ApplicationRepository ──

type mockApplicationRepo struct{ s *memStore }

func (m *mockApplicationRepo) Create(_ context.Context, app *model.Application) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return m.s.failErr
	}
	for _, a := range m.s.apps {
		if a.JobID == app.JobID && a.StudentID == app.StudentID {
			return duplicate(repository.ConstraintApplicationUnique)
		}
	}
	if app.ApplicationID == "" {
		app.ApplicationID = uuid.NewString()
	}
	// 以内存时钟覆盖，保证 applied_at 排序确定
	app.AppliedAt = m.s.tick()
	cp := *app
	cp.Job, cp.Student = nil, nil
	m.s.apps[app.ApplicationID] = &cp
	return nil
}

func (m *mockApplicationRepo) ExistsForJobAndStudent(_ context.Context, jobID, studentID string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return false, m.s.failErr
	}
	for _, a := range m.s.apps {
		if a.JobID == jobID && a.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func sortByAppliedDesc(apps []model.Application) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppliedAt.After(apps[j].AppliedAt) })
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, jobID string) ([]model.Application, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	var result []model.Application
	for _, a := range m.s.apps {
		if a.JobID != jobID {
			continue
		}
		cp := *a
		if u, ok := m.s.users[a.StudentID]; ok {
			student := *u
			cp.Student = &student
		}
		result = append(result, cp)
	}
	sortByAppliedDesc(result)
	return result, nil
}

func (m *mockApplicationRepo) ListByStudent(_ context.Context, studentID string) ([]model.Application, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	var result []model.Application
	for _, a := range m.s.apps {
		if a.StudentID != studentID {
			continue
		}
		cp := *a
		if j, ok := m.s.jobs[a.JobID]; ok {
			cp.Job = m.s.jobWithRelations(j)
		}
		result = append(result, cp)
	}
	sortByAppliedDesc(result)
	return result, nil
}

func (m *mockApplicationRepo) CountByJobs(_ context.Context, jobIDs []string) (map[string]int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	wanted := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = true
	}
	result := make(map[string]int64)
	for _, a := range m.s.apps {
		if wanted[a.JobID] {
			result[a.JobID]++
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) AppliedJobIDs(_ context.Context, studentID string, jobIDs []string) (map[string]bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return nil, m.s.failErr
	}
	wanted := make(map[string]bool, len(jobIDs))
	for _, id := range jobIDs {
		wanted[id] = true
	}
	result := make(map[string]bool)
	for _, a := range m.s.apps {
		if a.StudentID == studentID && wanted[a.JobID] {
			result[a.JobID] = true
		}
	}
	return result, nil
}

func (m *mockApplicationRepo) UpdateStatusForCollege(_ context.Context, id, collegeID string, status model.ApplicationStatus) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.failErr != nil {
		return false, m.s.failErr
	}
	a, ok := m.s.apps[id]
	if !ok {
		return false, nil
	}
	job, ok := m.s.jobs[a.JobID]
	if !ok || job.CollegeID != collegeID {
		return false, nil
	}
	a.Status = status
	a.UpdatedAt = m.s.tick()
	return true, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{revoked: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.revoked[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[jti]
	return ok, nil
}

// ── 测试夹具 ──

// fixture 两所学院，各含一名管理员、一名学生
type fixture struct {
	store    *memStore
	repo     *repository.Repository
	collegeA *model.College
	collegeB *model.College
	adminA   *model.User
	adminB   *model.User
	studentA *model.User
	studentB *model.User
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{store: store, repo: newMockRepository(store)}

	f.collegeA = &model.College{Name: "College A", Email: "info@a.edu", Location: "City A"}
	f.collegeB = &model.College{Name: "College B", Email: "info@b.edu", Location: "City B"}
	_ = store.insertCollege(f.collegeA)
	_ = store.insertCollege(f.collegeB)

	newUser := func(email, name string, role model.Role, college *model.College) *model.User {
		u := &model.User{Email: email, Name: name, Role: role, PasswordHash: "x", CollegeID: &college.CollegeID}
		_ = store.insertUser(u)
		return u
	}
	f.adminA = newUser("admin@a.edu", "Admin A", model.RoleAdmin, f.collegeA)
	f.adminB = newUser("admin@b.edu", "Admin B", model.RoleAdmin, f.collegeB)
	f.studentA = newUser("student@a.edu", "Student A", model.RoleStudent, f.collegeA)
	f.studentB = newUser("student@b.edu", "Student B", model.RoleStudent, f.collegeB)
	return f
}

func callerOf(u *model.User) *Caller {
	return &Caller{UserID: u.UserID, Email: u.Email, Role: u.Role, CollegeID: u.CollegeIDValue()}
}

// seedJob 绕过 Service 直接写入岗位
func (f *fixture) seedJob(title string, admin *model.User, deadline time.Time) *model.Job {
	job := &model.Job{
		Title:       title,
		Description: "desc",
		Location:    "Remote",
		Type:        model.JobTypeFullTime,
		Deadline:    deadline,
		CollegeID:   admin.CollegeIDValue(),
		PostedBy:    admin.UserID,
	}
	_ = (&mockJobRepo{s: f.store}).Create(context.Background(), job)
	return job
}
