package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/montage/internal/ports/secondary"
)

// Ensure mocks implement their interfaces
var _ secondary.MontageRepository = (*mockMontageRepo)(nil)
var _ secondary.ChecklistItemRepository = (*mockChecklistRepo)(nil)
var _ secondary.OrderRepository = (*mockOrderRepo)(nil)

// mockMontageRepo implements secondary.MontageRepository for testing.
type mockMontageRepo struct {
	montages  map[string]*secondary.MontageRecord
	createErr error
	updateErr error
}

func newMockMontageRepo() *mockMontageRepo {
	return &mockMontageRepo{montages: make(map[string]*secondary.MontageRecord)}
}

func (m *mockMontageRepo) Create(ctx context.Context, montage *secondary.MontageRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *montage
	if copied.CreatedAt == "" {
		copied.CreatedAt = time.Now().Format(time.RFC3339)
	}
	copied.UpdatedAt = copied.CreatedAt
	m.montages[montage.ID] = &copied
	return nil
}

func (m *mockMontageRepo) GetByID(ctx context.Context, id string) (*secondary.MontageRecord, error) {
	montage, ok := m.montages[id]
	if !ok || montage.DeletedAt != "" {
		return nil, fmt.Errorf("montage %s not found", id)
	}
	copied := *montage
	return &copied, nil
}

func (m *mockMontageRepo) List(ctx context.Context, filters secondary.MontageFilters) ([]*secondary.MontageRecord, error) {
	var out []*secondary.MontageRecord
	for _, montage := range m.montages {
		if montage.DeletedAt != "" && !filters.IncludeDeleted {
			continue
		}
		if filters.Status != "" && montage.Status != filters.Status {
			continue
		}
		if filters.InstallerID != "" && montage.InstallerID != filters.InstallerID {
			continue
		}
		if filters.MeasurerID != "" && montage.MeasurerID != filters.MeasurerID {
			continue
		}
		copied := *montage
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockMontageRepo) UpdateStatus(ctx context.Context, id, status string, setCompleted bool) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.Status = status
	if setCompleted {
		montage.CompletedAt = time.Now().Format(time.RFC3339)
	} else {
		montage.CompletedAt = ""
	}
	return nil
}

func (m *mockMontageRepo) SetMaterialStatus(ctx context.Context, id, status string) error {
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.MaterialStatus = status
	return nil
}

func (m *mockMontageRepo) SetInstallerStatus(ctx context.Context, id, status string) error {
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.InstallerStatus = status
	return nil
}

func (m *mockMontageRepo) Schedule(ctx context.Context, id, startAt, endAt string) error {
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.ScheduledInstallationAt = startAt
	montage.ScheduledInstallationEndAt = endAt
	return nil
}

func (m *mockMontageRepo) SetSkirtingDate(ctx context.Context, id, at string) error {
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.ScheduledSkirtingInstallationAt = at
	return nil
}

func (m *mockMontageRepo) AssignInstaller(ctx context.Context, id, installerID string) error {
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.InstallerID = installerID
	return nil
}

func (m *mockMontageRepo) AssignMeasurer(ctx context.Context, id, measurerID string) error {
	montage, ok := m.montages[id]
	if !ok {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.MeasurerID = measurerID
	return nil
}

func (m *mockMontageRepo) SoftDelete(ctx context.Context, id string) error {
	montage, ok := m.montages[id]
	if !ok || montage.DeletedAt != "" {
		return fmt.Errorf("montage %s not found", id)
	}
	montage.DeletedAt = time.Now().Format(time.RFC3339)
	return nil
}

func (m *mockMontageRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("MON-%03d", len(m.montages)+1), nil
}

// mockChecklistRepo implements secondary.ChecklistItemRepository for testing.
type mockChecklistRepo struct {
	items     map[string]*secondary.ChecklistItemRecord
	montages  map[string]bool
	nextID    int
	createErr error
}

func newMockChecklistRepo() *mockChecklistRepo {
	return &mockChecklistRepo{
		items:    make(map[string]*secondary.ChecklistItemRecord),
		montages: make(map[string]bool),
	}
}

func (m *mockChecklistRepo) Create(ctx context.Context, item *secondary.ChecklistItemRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *item
	copied.CreatedAt = time.Now().Format(time.RFC3339)
	m.items[item.ID] = &copied
	return nil
}

func (m *mockChecklistRepo) GetByID(ctx context.Context, id string) (*secondary.ChecklistItemRecord, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("checklist item %s not found", id)
	}
	copied := *item
	return &copied, nil
}

func (m *mockChecklistRepo) ListByMontage(ctx context.Context, montageID string) ([]*secondary.ChecklistItemRecord, error) {
	var out []*secondary.ChecklistItemRecord
	for _, item := range m.items {
		if item.MontageID == montageID {
			copied := *item
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockChecklistRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	item, ok := m.items[id]
	if !ok {
		return fmt.Errorf("checklist item %s not found", id)
	}
	item.Completed = completed
	if completed {
		item.CompletedAt = time.Now().Format(time.RFC3339)
	} else {
		item.CompletedAt = ""
	}
	return nil
}

func (m *mockChecklistRepo) SetAttachment(ctx context.Context, id, reference string) error {
	item, ok := m.items[id]
	if !ok {
		return fmt.Errorf("checklist item %s not found", id)
	}
	item.Attachment = reference
	return nil
}

func (m *mockChecklistRepo) UpdateLabel(ctx context.Context, id, label string) error {
	item, ok := m.items[id]
	if !ok {
		return fmt.Errorf("checklist item %s not found", id)
	}
	item.Label = label
	return nil
}

func (m *mockChecklistRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("checklist item %s not found", id)
	}
	delete(m.items, id)
	return nil
}

func (m *mockChecklistRepo) GetNextID(ctx context.Context) (string, error) {
	m.nextID++
	return fmt.Sprintf("CHK-%03d", m.nextID), nil
}

func (m *mockChecklistRepo) MontageExists(ctx context.Context, montageID string) (bool, error) {
	return m.montages[montageID], nil
}

// mockOrderRepo implements secondary.OrderRepository for testing.
type mockOrderRepo struct {
	orders    map[string]*secondary.OrderRecord
	createErr error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*secondary.OrderRecord)}
}

func (m *mockOrderRepo) Create(ctx context.Context, order *secondary.OrderRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *order
	copied.CreatedAt = time.Now().Format(time.RFC3339)
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*secondary.OrderRecord, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s not found", id)
	}
	copied := *order
	return &copied, nil
}

func (m *mockOrderRepo) List(ctx context.Context, filters secondary.OrderFilters) ([]*secondary.OrderRecord, error) {
	var out []*secondary.OrderRecord
	for _, order := range m.orders {
		if filters.Workflow != "" && order.Workflow != filters.Workflow {
			continue
		}
		if filters.Stage != "" && order.Stage != filters.Stage {
			continue
		}
		if filters.AdminAttention && !order.RequiresAdminAttention {
			continue
		}
		copied := *order
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockOrderRepo) UpdateStage(ctx context.Context, id, stageValue, note string) error {
	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	order.Stage = stageValue
	if note != "" {
		if order.StageNotes != "" {
			order.StageNotes += "\n"
		}
		order.StageNotes += note
	}
	return nil
}

func (m *mockOrderRepo) SetAdminAttention(ctx context.Context, id string, v bool) error {
	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	order.RequiresAdminAttention = v
	return nil
}

func (m *mockOrderRepo) SetQuoteFlag(ctx context.Context, id string, v bool) error {
	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	order.HasQuote = v
	return nil
}

func (m *mockOrderRepo) SetInvoiceFlag(ctx context.Context, id string, v bool) error {
	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	order.HasInvoice = v
	return nil
}

func (m *mockOrderRepo) SetExpectedShipDate(ctx context.Context, id, date string) error {
	order, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	order.ExpectedShipDate = date
	return nil
}

func (m *mockOrderRepo) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("ORD-%03d", len(m.orders)+1), nil
}
