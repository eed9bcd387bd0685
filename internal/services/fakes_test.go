package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"employee-system/internal/entities"
	"employee-system/internal/repositories"
	apperrors "employee-system/pkg/errors"
	"employee-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
)

// fakeTxManager runs the callback without a real transaction; repositories
// in these tests ignore the tx argument.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[uint64]*entities.Employee
	nextID    uint64
}

func newFakeEmployeeRepo(list ...*entities.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[uint64]*entities.Employee), nextID: 1}
	for _, e := range list {
		if e.ID == 0 {
			e.ID = r.nextID
		}
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) get(id uint64) *entities.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.employees[id]
}

func (r *fakeEmployeeRepo) sorted(filter func(*entities.Employee) bool) []entities.Employee {
	ids := make([]uint64, 0, len(r.employees))
	for id := range r.employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]entities.Employee, 0, len(ids))
	for _, id := range ids {
		if e := r.employees[id]; filter(e) {
			out = append(out, *e)
		}
	}
	return out
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id uint64) (*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) FindByEmail(_ context.Context, email string) (*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if strings.EqualFold(e.Contact.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEmployeeRepo) FindByEmpNo(_ context.Context, empNo string) (*entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.EmpNo == empNo {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEmployeeRepo) FindByIDs(_ context.Context, ids []uint64) ([]entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.sorted(func(e *entities.Employee) bool { return wanted[e.ID] }), nil
}

func (r *fakeEmployeeRepo) Exists(_ context.Context, id uint64) (bool, error) {
	return r.get(id) != nil, nil
}

func (r *fakeEmployeeRepo) ExistsByEmpNo(_ context.Context, _ pgx.Tx, empNo string, excludeID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.employees {
		if e.EmpNo == empNo && e.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func active(e *entities.Employee) bool { return !e.Status.IsDeleted }

func (r *fakeEmployeeRepo) ListActive(_ context.Context, limit, offset uint64) ([]entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(active)
	if offset >= uint64(len(all)) {
		return []entities.Employee{}, nil
	}
	end := min(offset+limit, uint64(len(all)))
	return all[offset:end], nil
}

func (r *fakeEmployeeRepo) ListAllActive(_ context.Context) ([]entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(active), nil
}

func (r *fakeEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	list, _ := r.ListAllActive(ctx)
	return int64(len(list)), nil
}

func (r *fakeEmployeeRepo) ListRecycled(_ context.Context) ([]entities.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(e *entities.Employee) bool { return e.Status.IsDeleted }), nil
}

func (r *fakeEmployeeRepo) CountRecycled(ctx context.Context) (int64, error) {
	list, _ := r.ListRecycled(ctx)
	return int64(len(list)), nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, _ pgx.Tx, e *entities.Employee) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.employees {
		if existing.EmpNo == e.EmpNo {
			return 0, apperrors.ErrConflict
		}
	}
	e.ID = r.nextID
	r.nextID++
	cp := *e
	r.employees[e.ID] = &cp
	return e.ID, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, _ pgx.Tx, e *entities.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[e.ID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) CountExisting(_ context.Context, _ pgx.Tx, ids []uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.employees[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r *fakeEmployeeRepo) SoftDelete(_ context.Context, _ pgx.Tx, ids []uint64, deletedOn time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			e.Status.IsDeleted = true
			d := deletedOn
			e.Status.DeletedOn = &d
			n++
		}
	}
	return n, nil
}

func (r *fakeEmployeeRepo) Restore(_ context.Context, _ pgx.Tx, ids []uint64) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	restored := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.employees[id]; ok {
			e.Status.IsDeleted = false
			e.Status.DeletedOn = nil
			restored = append(restored, id)
		}
	}
	return restored, nil
}

func (r *fakeEmployeeRepo) DeleteForever(_ context.Context, _ pgx.Tx, ids []uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.employees[id]; ok {
			delete(r.employees, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeEmployeeRepo) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Job.PasswordHash = passwordHash
	return nil
}

func (r *fakeEmployeeRepo) MarkLoggedIn(_ context.Context, id uint64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[id]; ok {
		e.Status.Logged = true
		e.Status.LastLogged = &at
	}
	return nil
}

func (r *fakeEmployeeRepo) SetOTP(_ context.Context, id uint64, code string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[id]; ok {
		e.Status.OTP = &code
		e.Status.OTPExpiry = &expiry
	}
	return nil
}

func (r *fakeEmployeeRepo) ClearOTP(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[id]; ok {
		e.Status.OTP = nil
		e.Status.OTPExpiry = nil
	}
	return nil
}

func (r *fakeEmployeeRepo) UpdatePhotoLink(_ context.Context, id uint64, link string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[id]; ok {
		e.Profile.PhotoLink = link
	}
	return nil
}

// fakeCache ignores expirations; tests assert on the keys that were set.
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Duration
	delErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string), expires: make(map[string]time.Duration)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.values[key] = v
	case []byte:
		c.values[key] = string(v)
	default:
		c.values[key] = "set"
	}
	c.expires[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.delErr != nil {
		return c.delErr
	}
	for _, k := range keys {
		delete(c.values, k)
		delete(c.expires, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, ch := range c.values[key] {
		n = n*10 + int64(ch-'0')
	}
	n++
	c.values[key] = itoa(n)
	return n, nil
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func (c *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; !ok {
		return false, nil
	}
	c.expires[key] = expiration
	return true, nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

type fakeStorage struct {
	saved   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: make(map[string][]byte)}
}

func (s *fakeStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	path := prefix + "/" + originalFileName
	s.saved[path] = buf.Bytes()
	return path, nil
}

func (s *fakeStorage) Delete(filePath string) error {
	s.deleted = append(s.deleted, filePath)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name())
	}
	return out
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeStatsRepo struct {
	divisions   []entities.DivisionCount
	genders     []entities.FunctionGenderCount
	bloodGroups []entities.BloodGroupCount
	byMonth     []entities.EmployeeBirthday
	birthdays   map[[2]int][]entities.EmployeeBirthday
	calls       map[string]int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{birthdays: make(map[[2]int][]entities.EmployeeBirthday), calls: make(map[string]int)}
}

func (r *fakeStatsRepo) CountByDivision(context.Context) ([]entities.DivisionCount, error) {
	r.calls["division"]++
	return r.divisions, nil
}

func (r *fakeStatsRepo) CountGenderByFunction(context.Context) ([]entities.FunctionGenderCount, error) {
	r.calls["gender"]++
	return r.genders, nil
}

func (r *fakeStatsRepo) CountByBloodGroup(context.Context) ([]entities.BloodGroupCount, error) {
	r.calls["blood"]++
	return r.bloodGroups, nil
}

func (r *fakeStatsRepo) FindByBirthMonth(_ context.Context, month int) ([]entities.EmployeeBirthday, error) {
	r.calls["month"]++
	return r.byMonth, nil
}

func (r *fakeStatsRepo) FindBirthdaysOn(_ context.Context, month, day int) ([]entities.EmployeeBirthday, error) {
	return r.birthdays[[2]int{month, day}], nil
}

type fakeMessageRepo struct {
	messages []entities.BirthdayMessage
	nextID   uint64
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *entities.BirthdayMessage) (*entities.BirthdayMessage, error) {
	r.nextID++
	saved := *msg
	saved.ID = r.nextID
	r.messages = append(r.messages, saved)
	return &saved, nil
}

func (r *fakeMessageRepo) Inbox(_ context.Context, receiverID uint64) ([]entities.BirthdayThread, error) {
	bySender := make(map[uint64]*entities.BirthdayThread)
	order := make([]uint64, 0)
	for _, m := range r.messages {
		if m.ReceiverID != receiverID {
			continue
		}
		t, ok := bySender[m.SenderID]
		if !ok {
			t = &entities.BirthdayThread{SenderID: m.SenderID}
			bySender[m.SenderID] = t
			order = append(order, m.SenderID)
		}
		if !m.Timestamp.Before(t.Timestamp) {
			t.SenderName, t.Message, t.Timestamp = m.SenderName, m.Message, m.Timestamp
		}
		if !m.IsRead {
			t.UnreadCount++
		}
	}
	out := make([]entities.BirthdayThread, 0, len(order))
	for _, id := range order {
		out = append(out, *bySender[id])
	}
	return out, nil
}

func (r *fakeMessageRepo) Thread(_ context.Context, _ pgx.Tx, receiverID, senderID uint64) ([]entities.BirthdayMessage, error) {
	out := make([]entities.BirthdayMessage, 0)
	for _, m := range r.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkThreadRead(_ context.Context, _ pgx.Tx, receiverID, senderID uint64) (int64, error) {
	var n int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) DeleteForReceiver(_ context.Context, _ pgx.Tx, receiverID uint64) (int64, error) {
	kept := r.messages[:0]
	var n int64
	for _, m := range r.messages {
		if m.ReceiverID == receiverID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return n, nil
}

func (r *fakeMessageRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	kept := r.messages[:0]
	var n int64
	for _, m := range r.messages {
		if m.Timestamp.Before(cutoff) {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return n, nil
}

type fakeSeenRepo struct {
	markers map[uint64]entities.BirthdaySeen
}

func newFakeSeenRepo() *fakeSeenRepo {
	return &fakeSeenRepo{markers: make(map[uint64]entities.BirthdaySeen)}
}

func (r *fakeSeenRepo) FindByEmpID(_ context.Context, _ pgx.Tx, empID uint64) (*entities.BirthdaySeen, error) {
	s, ok := r.markers[empID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSeenRepo) Create(_ context.Context, _ pgx.Tx, seen *entities.BirthdaySeen) error {
	r.markers[seen.EmpID] = *seen
	return nil
}

func (r *fakeSeenRepo) DeleteByEmpID(_ context.Context, _ pgx.Tx, empID uint64) (int64, error) {
	if _, ok := r.markers[empID]; !ok {
		return 0, nil
	}
	delete(r.markers, empID)
	return 1, nil
}

type fakeIntercomRepo struct {
	items  map[uint64]*entities.EmployeeIntercom
	nextID uint64
}

func newFakeIntercomRepo() *fakeIntercomRepo {
	return &fakeIntercomRepo{items: make(map[uint64]*entities.EmployeeIntercom), nextID: 1}
}

func (r *fakeIntercomRepo) FindByID(_ context.Context, id uint64) (*entities.EmployeeIntercom, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeIntercomRepo) byEmpNo(empNo string) (*entities.EmployeeIntercom, error) {
	for _, i := range r.items {
		if i.EmpNo == empNo {
			cp := *i
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeIntercomRepo) ExistsByEmpNo(_ context.Context, empNo string, excludeID uint64) (bool, error) {
	for _, i := range r.items {
		if i.EmpNo == empNo && i.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeIntercomRepo) List(_ context.Context) ([]entities.EmployeeIntercom, error) {
	out := make([]entities.EmployeeIntercom, 0, len(r.items))
	for id := uint64(1); id < r.nextID; id++ {
		if i, ok := r.items[id]; ok {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *fakeIntercomRepo) Create(_ context.Context, item *entities.EmployeeIntercom) (*entities.EmployeeIntercom, error) {
	cp := *item
	cp.ID = r.nextID
	r.nextID++
	r.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeIntercomRepo) Update(_ context.Context, item *entities.EmployeeIntercom) (*entities.EmployeeIntercom, error) {
	if _, ok := r.items[item.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *item
	r.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *fakeIntercomRepo) DeleteByIDs(_ context.Context, _ pgx.Tx, ids []uint64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

type fakeRequestRepo struct {
	requests map[uint64]*entities.EmployeeRequest
	nextID   uint64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uint64]*entities.EmployeeRequest), nextID: 1}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *entities.EmployeeRequest) (uint64, error) {
	cp := *req
	cp.ID = r.nextID
	r.nextID++
	r.requests[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeRequestRepo) List(_ context.Context) ([]entities.EmployeeRequestRow, error) {
	out := make([]entities.EmployeeRequestRow, 0, len(r.requests))
	for id := r.nextID - 1; id >= 1; id-- {
		req, ok := r.requests[id]
		if !ok {
			continue
		}
		out = append(out, entities.EmployeeRequestRow{
			RequestID:   req.ID,
			EmpID:       req.EmpID,
			EmpNo:       req.EmpNo,
			Name:        req.FirstName + " " + req.LastName,
			RequestDate: req.RequestDate,
			Mobile:      req.Phone,
			Email:       req.Email,
			Message:     req.Message,
		})
	}
	return out, nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, requestID uint64) (*entities.EmployeeRequest, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, requestID uint64) error {
	if _, ok := r.requests[requestID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.requests, requestID)
	return nil
}

func (r *fakeRequestRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.requests)), nil
}

type fakeStateRepo struct {
	states map[uint64]entities.RequestState
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{states: make(map[uint64]entities.RequestState)}
}

func (r *fakeStateRepo) FindByEmpID(_ context.Context, empID uint64) (*entities.RequestState, error) {
	s, ok := r.states[empID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *fakeStateRepo) Upsert(_ context.Context, state *entities.RequestState) error {
	r.states[state.EmpID] = *state
	return nil
}

func (r *fakeStateRepo) DeleteByEmpID(_ context.Context, empID uint64) (int64, error) {
	if _, ok := r.states[empID]; !ok {
		return 0, nil
	}
	delete(r.states, empID)
	return 1, nil
}
