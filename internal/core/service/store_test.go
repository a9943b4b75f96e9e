package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaycrm/crm-api/internal/core/domain"
	"github.com/relaycrm/crm-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory store shared by the stub repositories. It mirrors the schema's
// foreign key actions: customers cascade, users set null.
// ---------------------------------------------------------------------------

type memStore struct {
	users        map[string]*domain.User
	customers    map[string]*domain.Customer
	leads        map[string]*domain.Lead
	tasks        map[string]*domain.Task
	interactions map[string]*domain.Interaction
	activities   []*domain.Activity
	seq          int
	clock        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[string]*domain.User),
		customers:    make(map[string]*domain.Customer),
		leads:        make(map[string]*domain.Lead),
		tasks:        make(map[string]*domain.Task),
		interactions: make(map[string]*domain.Interaction),
		clock:        time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%04d", prefix, m.seq)
}

// tick advances the clock so creation order is strict.
func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

var discardLogger = zerolog.Nop()

func paginate[T any](items []*T, p domain.PageRequest) []*T {
	start := p.Offset()
	if start > len(items) {
		return []*T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (m *memStore) customerRef(id string) *domain.CustomerRef {
	c, ok := m.customers[id]
	if !ok {
		return nil
	}
	return &domain.CustomerRef{ID: c.ID, Name: c.Name, Email: c.Email, Company: c.Company}
}

func (m *memStore) userRef(id *string) *domain.UserRef {
	if id == nil {
		return nil
	}
	u, ok := m.users[*id]
	if !ok {
		return nil
	}
	return &domain.UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// --- users ---

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *u
	clone.ID = r.nextID("user")
	clone.CreatedAt = r.tick()
	clone.UpdatedAt = clone.CreatedAt
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r memUsers) List(_ context.Context, f ports.UserFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Search != "" && !containsFold(u.Name, f.Search) && !containsFold(u.Email, f.Search) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

func (r memUsers) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	clone.UpdatedAt = r.tick()
	r.users[u.ID] = &clone
	out := clone
	return &out, nil
}

func (r memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	for _, l := range r.leads {
		if l.AssignedTo != nil && *l.AssignedTo == id {
			l.AssignedTo = nil
		}
	}
	for _, t := range r.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == id {
			t.AssignedTo = nil
		}
	}
	for _, i := range r.interactions {
		if i.UserID != nil && *i.UserID == id {
			i.UserID = nil
		}
	}
	return nil
}

// --- customers ---

type memCustomers struct{ *memStore }

func (r memCustomers) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	clone := *c
	clone.ID = r.nextID("cust")
	clone.Tags = append([]string{}, c.Tags...)
	clone.CreatedAt = r.tick()
	clone.UpdatedAt = clone.CreatedAt
	r.customers[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r memCustomers) FindByID(_ context.Context, id string) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (r memCustomers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.customers[id]
	return ok, nil
}

func (r memCustomers) List(_ context.Context, f ports.CustomerFilter) ([]*domain.Customer, int64, error) {
	var out []*domain.Customer
	for _, c := range r.customers {
		if f.Search != "" && !containsFold(c.Name, f.Search) && !containsFold(c.Email, f.Search) && !containsFold(c.Company, f.Search) {
			continue
		}
		if len(f.Tags) > 0 && !overlaps(c.Tags, f.Tags) {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

func (r memCustomers) Update(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	existing, ok := r.customers[c.ID]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.tick()
	r.customers[c.ID] = &clone
	out := clone
	return &out, nil
}

func (r memCustomers) Delete(_ context.Context, id string) error {
	if _, ok := r.customers[id]; !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.customers, id)
	for lid, l := range r.leads {
		if l.CustomerID == id {
			delete(r.leads, lid)
		}
	}
	for tid, t := range r.tasks {
		if t.CustomerID != nil && *t.CustomerID == id {
			delete(r.tasks, tid)
		}
	}
	for iid, i := range r.interactions {
		if i.CustomerID == id {
			delete(r.interactions, iid)
		}
	}
	return nil
}

// --- leads ---

type memLeads struct{ *memStore }

func (r memLeads) attach(l *domain.Lead) *domain.Lead {
	clone := *l
	clone.Customer = r.customerRef(l.CustomerID)
	clone.AssignedUser = r.userRef(l.AssignedTo)
	return &clone
}

func (r memLeads) Create(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
	clone := *l
	clone.ID = r.nextID("lead")
	clone.CreatedAt = r.tick()
	clone.UpdatedAt = clone.CreatedAt
	r.leads[clone.ID] = &clone
	return r.attach(&clone), nil
}

func (r memLeads) FindByID(_ context.Context, id string) (*domain.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	return r.attach(l), nil
}

func (r memLeads) List(_ context.Context, f ports.LeadFilter) ([]*domain.Lead, int64, error) {
	var out []*domain.Lead
	for _, l := range r.leads {
		if f.Stage != "" && string(l.Stage) != f.Stage {
			continue
		}
		if f.CustomerID != "" && l.CustomerID != f.CustomerID {
			continue
		}
		if f.AssignedTo != "" && (l.AssignedTo == nil || *l.AssignedTo != f.AssignedTo) {
			continue
		}
		out = append(out, r.attach(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

func (r memLeads) Update(_ context.Context, l *domain.Lead) (*domain.Lead, error) {
	existing, ok := r.leads[l.ID]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	clone := *l
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.tick()
	r.leads[l.ID] = &clone
	return r.attach(&clone), nil
}

func (r memLeads) UpdateStage(_ context.Context, id string, stage domain.LeadStage) (*domain.Lead, error) {
	l, ok := r.leads[id]
	if !ok {
		return nil, domain.ErrLeadNotFound
	}
	l.Stage = stage
	l.UpdatedAt = r.tick()
	return r.attach(l), nil
}

func (r memLeads) Delete(_ context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return domain.ErrLeadNotFound
	}
	delete(r.leads, id)
	return nil
}

// --- tasks ---

type memTasks struct{ *memStore }

func (r memTasks) attach(t *domain.Task) *domain.Task {
	clone := *t
	if t.CustomerID != nil {
		clone.Customer = r.customerRef(*t.CustomerID)
	}
	clone.AssignedUser = r.userRef(t.AssignedTo)
	return &clone
}

func (r memTasks) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	clone := *t
	clone.ID = r.nextID("task")
	clone.CreatedAt = r.tick()
	clone.UpdatedAt = clone.CreatedAt
	r.tasks[clone.ID] = &clone
	return r.attach(&clone), nil
}

func (r memTasks) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return r.attach(t), nil
}

func (r memTasks) List(_ context.Context, f ports.TaskFilter) ([]*domain.Task, int64, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if f.Status != "" && string(t.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(t.Priority) != f.Priority {
			continue
		}
		out = append(out, r.attach(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

func (r memTasks) Update(_ context.Context, t *domain.Task) (*domain.Task, error) {
	existing, ok := r.tasks[t.ID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.tick()
	r.tasks[t.ID] = &clone
	return r.attach(&clone), nil
}

func (r memTasks) UpdateStatus(_ context.Context, id string, status domain.TaskStatus) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Status = status
	t.UpdatedAt = r.tick()
	return r.attach(t), nil
}

func (r memTasks) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

// --- interactions ---

type memInteractions struct{ *memStore }

func (r memInteractions) attach(i *domain.Interaction) *domain.Interaction {
	clone := *i
	clone.Customer = r.customerRef(i.CustomerID)
	clone.User = r.userRef(i.UserID)
	return &clone
}

func (r memInteractions) Create(_ context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	clone := *i
	clone.ID = r.nextID("int")
	clone.CreatedAt = r.tick()
	clone.UpdatedAt = clone.CreatedAt
	r.interactions[clone.ID] = &clone
	return r.attach(&clone), nil
}

func (r memInteractions) FindByID(_ context.Context, id string) (*domain.Interaction, error) {
	i, ok := r.interactions[id]
	if !ok {
		return nil, domain.ErrInteractionNotFound
	}
	return r.attach(i), nil
}

func (r memInteractions) List(_ context.Context, f ports.InteractionFilter) ([]*domain.Interaction, int64, error) {
	var out []*domain.Interaction
	for _, i := range r.interactions {
		if f.CustomerID != "" && i.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, r.attach(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Timestamp.After(out[b].Timestamp) })
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

func (r memInteractions) Update(_ context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	existing, ok := r.interactions[i.ID]
	if !ok {
		return nil, domain.ErrInteractionNotFound
	}
	clone := *i
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = r.tick()
	r.interactions[i.ID] = &clone
	return r.attach(&clone), nil
}

func (r memInteractions) Delete(_ context.Context, id string) error {
	if _, ok := r.interactions[id]; !ok {
		return domain.ErrInteractionNotFound
	}
	delete(r.interactions, id)
	return nil
}

// --- activity ---

type memActivities struct {
	*memStore
	insertErr error
}

func (r *memActivities) Insert(_ context.Context, a *domain.Activity) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *a
	clone.ID = r.nextID("act")
	r.activities = append(r.activities, &clone)
	return nil
}

func (r *memActivities) List(_ context.Context, f ports.ActivityFilter) ([]*domain.Activity, int64, error) {
	var out []*domain.Activity
	for i := len(r.activities) - 1; i >= 0; i-- {
		a := r.activities[i]
		if f.EntityType != "" && a.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && a.EntityID != f.EntityID {
			continue
		}
		out = append(out, a)
	}
	return paginate(out, f.PageRequest), int64(len(out)), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// fixture wires every service to one memStore.
type fixture struct {
	store        *memStore
	activities   *memActivities
	auth         *AuthService
	users        *UserService
	customers    *CustomerService
	leads        *LeadService
	tasks        *TaskService
	interactions *InteractionService
}

func newFixture() *fixture {
	store := newMemStore()
	acts := &memActivities{memStore: store}
	recorder := NewActivityRecorder(acts, discardLogger)

	users := memUsers{store}
	customers := memCustomers{store}

	return &fixture{
		store:        store,
		activities:   acts,
		auth:         NewAuthService(users, AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, BcryptCost: 4}, discardLogger),
		users:        NewUserService(users, recorder, discardLogger),
		customers:    NewCustomerService(customers, recorder, discardLogger),
		leads:        NewLeadService(memLeads{store}, customers, users, recorder, discardLogger),
		tasks:        NewTaskService(memTasks{store}, customers, users, recorder, discardLogger),
		interactions: NewInteractionService(memInteractions{store}, customers, recorder, discardLogger),
	}
}

var adminActor = domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}
