// Package stage defines the fixed, ordered stage catalogs for each workflow.
// A catalog is immutable reference data built once at package init; position
// lookups go through a precomputed index table.
package stage

import "math"

// Workflow identifies which stage sequence applies to an entity.
type Workflow string

const (
	// WorkflowMontage is the installation process sequence.
	WorkflowMontage Workflow = "montage"
	// WorkflowOrder is the order fulfillment sequence.
	WorkflowOrder Workflow = "order"
	// WorkflowDropshipping is the dropshipping sub-ledger sequence.
	WorkflowDropshipping Workflow = "dropshipping"
)

// Execution modes for orders. The mode determines which stage subset is
// valid and visible for a given order.
const (
	ExecutionInstallationOnly = "INSTALLATION_ONLY"
	ExecutionDeliveryOnly     = "DELIVERY_ONLY"
)

// Stage is a named, ordered position in a workflow sequence.
type Stage struct {
	Value string
	Label string
}

// Catalog is an ordered, immutable list of stages with O(1) position lookup.
type Catalog struct {
	workflow Workflow
	stages   []Stage
	index    map[string]int
}

// NewCatalog builds a catalog from an ordered stage list.
func NewCatalog(workflow Workflow, stages []Stage) *Catalog {
	index := make(map[string]int, len(stages))
	for i, s := range stages {
		index[s.Value] = i
	}
	return &Catalog{workflow: workflow, stages: stages, index: index}
}

// Workflow returns the workflow this catalog belongs to.
func (c *Catalog) Workflow() Workflow {
	return c.workflow
}

// Stages returns a copy of the ordered stage list.
func (c *Catalog) Stages() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// Len returns the number of stages in the catalog.
func (c *Catalog) Len() int {
	return len(c.stages)
}

// IndexOf returns the ordinal of a stage value within the catalog.
// Unknown values fall back to 0 rather than erroring.
func (c *Catalog) IndexOf(value string) int {
	if i, ok := c.index[value]; ok {
		return i
	}
	return 0
}

// Contains reports whether value is a member of the catalog.
func (c *Catalog) Contains(value string) bool {
	_, ok := c.index[value]
	return ok
}

// Label returns the display label for a stage value, or the value itself
// when the stage is unknown.
func (c *Catalog) Label(value string) string {
	if i, ok := c.index[value]; ok {
		return c.stages[i].Label
	}
	return value
}

// First returns the initial stage of the catalog.
func (c *Catalog) First() Stage {
	return c.stages[0]
}

// Progress returns the percent progress for a stage value:
// round(100 * index / (N-1)). Monotonically non-decreasing with the ordinal.
func (c *Catalog) Progress(value string) int {
	if len(c.stages) < 2 {
		return 100
	}
	i := c.IndexOf(value)
	return int(math.Round(100 * float64(i) / float64(len(c.stages)-1)))
}

var (
	montageCatalog = NewCatalog(WorkflowMontage, []Stage{
		{Value: "lead", Label: "Lead"},
		{Value: "measurement", Label: "Pomiar"},
		{Value: "offer", Label: "Oferta"},
		{Value: "contract", Label: "Umowa"},
		{Value: "preparation", Label: "Przygotowanie"},
		{Value: "scheduled", Label: "Zaplanowano"},
		{Value: "installation", Label: "Montaż"},
		{Value: "completed", Label: "Zakończono"},
	})

	orderStages = []Stage{
		{Value: "RECEIVED", Label: "Przyjęto"},
		{Value: "CONFIRMED", Label: "Potwierdzono"},
		{Value: "MATERIALS_ORDERED", Label: "Materiał zamówiony"},
		{Value: "READY_TO_SHIP", Label: "Gotowe do wysyłki"},
		{Value: "SHIPPED", Label: "Wysłano"},
		{Value: "DELIVERED", Label: "Dostarczono"},
		{Value: "INSTALLATION", Label: "Montaż"},
		{Value: "COMPLETED", Label: "Zakończono"},
	}

	orderCatalog = NewCatalog(WorkflowOrder, orderStages)

	// Per-mode subsets share the full sequence ordering; a mode only hides
	// the stages that do not apply to it.
	installationOnlyCatalog = NewCatalog(WorkflowOrder, subset(orderStages,
		"RECEIVED", "CONFIRMED", "MATERIALS_ORDERED", "INSTALLATION", "COMPLETED"))
	deliveryOnlyCatalog = NewCatalog(WorkflowOrder, subset(orderStages,
		"RECEIVED", "CONFIRMED", "MATERIALS_ORDERED", "READY_TO_SHIP", "SHIPPED", "DELIVERED", "COMPLETED"))

	dropshippingCatalog = NewCatalog(WorkflowDropshipping, []Stage{
		{Value: "LEAD", Label: "Lead"},
		{Value: "OFERTA", Label: "Oferta"},
		{Value: "ZALICZKA", Label: "Zaliczka"},
		{Value: "ZAMOWIENIE", Label: "Zamówienie"},
		{Value: "DOSTAWA", Label: "Dostawa"},
		{Value: "FAKTURA_KONCOWA", Label: "Faktura końcowa"},
	})
)

func subset(stages []Stage, values ...string) []Stage {
	wanted := make(map[string]bool, len(values))
	for _, v := range values {
		wanted[v] = true
	}
	var out []Stage
	for _, s := range stages {
		if wanted[s.Value] {
			out = append(out, s)
		}
	}
	return out
}

// MontageCatalog returns the installation process stage catalog.
func MontageCatalog() *Catalog {
	return montageCatalog
}

// OrderCatalog returns the full order fulfillment stage catalog.
func OrderCatalog() *Catalog {
	return orderCatalog
}

// OrderCatalogForMode returns the order stage catalog visible for an
// execution mode. Unknown modes get the full catalog.
func OrderCatalogForMode(mode string) *Catalog {
	switch mode {
	case ExecutionInstallationOnly:
		return installationOnlyCatalog
	case ExecutionDeliveryOnly:
		return deliveryOnlyCatalog
	default:
		return orderCatalog
	}
}

// DropshippingCatalog returns the dropshipping stage catalog.
func DropshippingCatalog() *Catalog {
	return dropshippingCatalog
}

// CatalogFor returns the catalog for a workflow.
func CatalogFor(workflow Workflow) *Catalog {
	switch workflow {
	case WorkflowOrder:
		return orderCatalog
	case WorkflowDropshipping:
		return dropshippingCatalog
	default:
		return montageCatalog
	}
}
