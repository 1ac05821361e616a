package entity

// Kind names one of the ten managed record types.
type Kind string

const (
	KindWorker     Kind = "trabajadores"
	KindWarehouse  Kind = "almacenes"
	KindExpense    Kind = "gastos"
	KindAttendance Kind = "asistencias"
	KindPayment    Kind = "pagos"
	KindSchedule   Kind = "horarios"
	KindTask       Kind = "tareas"
	KindClient     Kind = "clientes"
	KindMenu       Kind = "menu"
	KindSale       Kind = "ventas"
)

// Format selects how a table cell renders a record field.
type Format int

const (
	FormatText Format = iota
	FormatJoin       // concatenate Fields with a space
	FormatMoney      // "$" prefix
	FormatBadge      // grey pill around the value
	FormatStatus     // boolean or threshold status pill, see StatusSpec
	FormatDocuments  // one green badge per true flag in DocumentFlags
	FormatWeekday    // falsy day cells fall back to "Descanso"
	FormatIngredient // ingredient badges, first 3 plus a "+N" overflow
	FormatClientRef  // "Cliente #<id>"
)

// StatusSpec configures a FormatStatus column. When Threshold is set the
// status is derived from a numeric field (value > Threshold), otherwise from
// the boolean field itself.
type StatusSpec struct {
	Threshold  int
	Numeric    bool
	TrueLabel  string
	FalseLabel string
	TrueClass  string
	FalseClass string
}

// DocumentFlag pairs a boolean record field with its badge label.
type DocumentFlag struct {
	Field string
	Label string
}

// Column describes one table column for a kind.
type Column struct {
	Header string
	Field  string
	Fields []string // FormatJoin only
	Format Format
	Status *StatusSpec
	Docs   []DocumentFlag

	// Fallback replaces empty FormatText values ("N/A" for missing dates).
	Fallback string
}

// Input is the form control type for a field.
type Input string

const (
	InputText     Input = "text"
	InputNumber   Input = "number"
	InputDate     Input = "date"
	InputTime     Input = "time"
	InputPassword Input = "password"
	InputTextarea Input = "textarea"
	InputCheckbox Input = "checkbox"
	InputSelect   Input = "select"
)

// Field describes one bound form field for the modal controller: how it is
// rendered, decoded into the save payload, and validated. Rules holds extra
// go-playground/validator constraints ("min=0", "numeric", ...).
type Field struct {
	Name     string
	Label    string
	Input    Input
	Required bool
	Rules    string
	Source   Kind // select options come from this kind's records
}

// SelectTarget names a selector element populated from this kind's records.
type SelectTarget struct {
	ElementID string
}

// Descriptor is the per-kind configuration driving the generic table
// renderer, selection populators, and modal/form controller. Wire names stay
// in Spanish because that is what the remote API speaks.
type Descriptor struct {
	Kind           Kind
	Title          string
	Singular       string // "Trabajador", "Tarea", ...
	Feminine       bool   // picks "creada"/"eliminada" over "creado"/"eliminado"
	CollectionPath string // GET list, e.g. "/trabajadores"
	ItemPath       string // POST create, PUT/DELETE "/trabajador/{id}"
	PrimaryKey     string
	Columns        []Column
	Fields         []Field
	EmptyMessage   string
	SelectTargets  []SelectTarget // selects fed by this kind
	OptionLabel    []string       // record fields joined for the option label
	OptionPrompt   string         // leading placeholder, e.g. "Seleccionar trabajador"
}

// Colspan is the full table width: all columns plus the actions column.
func (d Descriptor) Colspan() int {
	return len(d.Columns) + 1
}

// SavedMessage is the success notification after create or update.
func (d Descriptor) SavedMessage(created bool) string {
	verb := "actualizado"
	if created {
		verb = "creado"
	}
	if d.Feminine {
		verb = verb[:len(verb)-1] + "a"
	}
	return d.Singular + " " + verb + " exitosamente"
}

// DeletedMessage is the success notification after a confirmed delete.
func (d Descriptor) DeletedMessage() string {
	verb := "eliminado"
	if d.Feminine {
		verb = "eliminada"
	}
	return d.Singular + " " + verb + " exitosamente"
}

// Ingredients is the fixed set of boolean menu flags, in badge order.
var Ingredients = []DocumentFlag{
	{Field: "tortilla_maiz", Label: "Tortilla Maíz"},
	{Field: "tortilla_harina", Label: "Tortilla Harina"},
	{Field: "carne_res", Label: "Carne Res"},
	{Field: "carne_puerco", Label: "Carne Puerco"},
	{Field: "aguacate", Label: "Aguacate"},
	{Field: "longaniza", Label: "Longaniza"},
	{Field: "cecina", Label: "Cecina"},
	{Field: "chorizo_argentino", Label: "Chorizo Argentino"},
	{Field: "chicharron", Label: "Chicharrón"},
	{Field: "salsa_quemada", Label: "Salsa Quemada"},
	{Field: "chimichurri", Label: "Chimichurri"},
}

// IngredientBadges lists the labels of the truthy flags, in declared order.
func IngredientBadges(r Record) []string {
	var out []string
	for _, ing := range Ingredients {
		if r.Bool(ing.Field) {
			out = append(out, ing.Label)
		}
	}
	return out
}
