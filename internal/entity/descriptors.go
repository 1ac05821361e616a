package entity

// workerSelects are the selector elements that reference a worker.
var workerSelects = []SelectTarget{
	{ElementID: "almacen_user_id"},
	{ElementID: "gasto_user_id"},
	{ElementID: "asistencia_user_id"},
	{ElementID: "pago_user_id"},
	{ElementID: "horario_user"},
	{ElementID: "tarea_user_id"},
}

var descriptors = []Descriptor{
	{
		Kind:           KindWorker,
		Title:          "Trabajadores",
		Singular:       "Trabajador",
		CollectionPath: "/trabajadores",
		ItemPath:       "/trabajador",
		PrimaryKey:     "user_id",
		EmptyMessage:   "No hay trabajadores registrados",
		SelectTargets:  workerSelects,
		OptionLabel:    []string{"nombre_t", "apellido_p"},
		OptionPrompt:   "Seleccionar trabajador",
		Columns: []Column{
			{Header: "ID", Field: "user_id"},
			{Header: "Nombre", Field: "nombre_t"},
			{Header: "Apellidos", Fields: []string{"apellido_p", "apellido_m"}, Format: FormatJoin},
			{Header: "Puesto", Field: "puesto"},
			{Header: "Fecha de Nacimiento", Field: "fecha_nacimiento", Fallback: "N/A"},
			{Header: "Documentos", Format: FormatDocuments, Docs: []DocumentFlag{
				{Field: "curp", Label: "CURP"},
				{Field: "ine", Label: "INE"},
				{Field: "acta_nacimiento", Label: "Acta"},
			}},
		},
		Fields: []Field{
			{Name: "nombre_t", Label: "Nombre", Input: InputText, Required: true},
			{Name: "apellido_p", Label: "Apellido Paterno", Input: InputText, Required: true},
			{Name: "apellido_m", Label: "Apellido Materno", Input: InputText, Required: true},
			{Name: "puesto", Label: "Puesto", Input: InputText, Required: true},
			{Name: "fecha_nacimiento", Label: "Fecha de Nacimiento", Input: InputDate},
			{Name: "contrasena", Label: "Contraseña", Input: InputPassword, Required: true},
			{Name: "numero", Label: "Número", Input: InputText},
			{Name: "curp", Label: "CURP", Input: InputCheckbox},
			{Name: "acta_nacimiento", Label: "Acta de Nacimiento", Input: InputCheckbox},
			{Name: "ine", Label: "INE", Input: InputCheckbox},
			{Name: "constancia_sf", Label: "Constancia Situación Fiscal", Input: InputCheckbox},
			{Name: "constancia_ht", Label: "Constancia Historial de Trabajo", Input: InputCheckbox},
			{Name: "fotos", Label: "Fotos", Input: InputCheckbox},
			{Name: "uniforme", Label: "Uniforme", Input: InputCheckbox},
			{Name: "correo", Label: "Correo", Input: InputCheckbox},
		},
	},
	{
		Kind:           KindWarehouse,
		Title:          "Almacén",
		Singular:       "Producto",
		CollectionPath: "/almacenes",
		ItemPath:       "/almacen",
		PrimaryKey:     "producto_id",
		EmptyMessage:   "No hay productos en almacén",
		SelectTargets:  []SelectTarget{{ElementID: "gasto_producto_id"}},
		OptionLabel:    []string{"nombre_a"},
		OptionPrompt:   "Seleccionar producto",
		Columns: []Column{
			{Header: "ID", Field: "producto_id"},
			{Header: "Producto", Field: "nombre_a"},
			{Header: "Unidades", Field: "unidades"},
			{Header: "Tipo", Field: "tipo"},
			{Header: "Responsable", Field: "responsable"},
			{Header: "Estado", Field: "unidades", Format: FormatStatus, Status: &StatusSpec{
				Numeric: true, Threshold: 10,
				TrueLabel: "Disponible", FalseLabel: "Bajo",
				TrueClass: "status-active", FalseClass: "status-low",
			}},
		},
		Fields: []Field{
			{Name: "nombre_a", Label: "Producto", Input: InputText, Required: true},
			{Name: "unidades", Label: "Unidades", Input: InputNumber, Required: true, Rules: "min=0"},
			{Name: "tipo", Label: "Tipo", Input: InputText, Required: true},
			{Name: "user_id", Label: "Responsable", Input: InputSelect, Required: true, Source: KindWorker},
		},
	},
	{
		Kind:           KindExpense,
		Title:          "Gastos",
		Singular:       "Gasto",
		CollectionPath: "/gastos",
		ItemPath:       "/gasto",
		PrimaryKey:     "gasto_id",
		EmptyMessage:   "No hay gastos registrados",
		Columns: []Column{
			{Header: "ID", Field: "gasto_id"},
			{Header: "Fecha", Field: "fecha"},
			{Header: "Producto", Field: "nombre_a"},
			{Header: "Unidades", Field: "unidades"},
			{Header: "Costo", Field: "costo", Format: FormatMoney},
			{Header: "Tipo", Field: "tipo", Format: FormatBadge},
			{Header: "Responsable", Field: "responsable"},
		},
		Fields: []Field{
			{Name: "fecha", Label: "Fecha", Input: InputDate, Required: true},
			{Name: "producto_id", Label: "Producto", Input: InputSelect, Required: true, Source: KindWarehouse},
			{Name: "unidades", Label: "Unidades", Input: InputNumber, Required: true, Rules: "min=1"},
			{Name: "costo", Label: "Costo", Input: InputNumber, Required: true, Rules: "min=0"},
			{Name: "tipo", Label: "Tipo", Input: InputText, Required: true},
			{Name: "user_id", Label: "Responsable", Input: InputSelect, Required: true, Source: KindWorker},
		},
	},
	{
		Kind:           KindAttendance,
		Title:          "Asistencias",
		Singular:       "Asistencia",
		Feminine:       true,
		CollectionPath: "/asistencias",
		ItemPath:       "/asistencia",
		PrimaryKey:     "id",
		EmptyMessage:   "No hay asistencias registradas",
		Columns: []Column{
			{Header: "ID", Field: "id"},
			{Header: "Trabajador", Fields: []string{"nombre_t", "apellido_p"}, Format: FormatJoin},
			{Header: "Fecha", Field: "fecha"},
			{Header: "Entrada", Field: "entrada"},
			{Header: "Salida", Field: "salida"},
			{Header: "Retardo", Field: "retardo"},
			{Header: "Descuento", Field: "descuento"},
			{Header: "Mes", Field: "mes"},
		},
		Fields: []Field{
			{Name: "user_id", Label: "Trabajador", Input: InputSelect, Required: true, Source: KindWorker},
			{Name: "fecha", Label: "Fecha", Input: InputDate, Required: true},
			{Name: "entrada", Label: "Entrada", Input: InputTime, Required: true},
			{Name: "salida", Label: "Salida", Input: InputTime},
			{Name: "retardo", Label: "Retardo", Input: InputCheckbox},
			{Name: "descuento", Label: "Descuento", Input: InputNumber, Rules: "min=0"},
			{Name: "mes", Label: "Mes", Input: InputText, Required: true},
		},
	},
	{
		Kind:           KindPayment,
		Title:          "Pagos",
		Singular:       "Pago",
		CollectionPath: "/pagos",
		ItemPath:       "/pago",
		PrimaryKey:     "id",
		EmptyMessage:   "No hay pagos registrados",
		Columns: []Column{
			{Header: "ID", Field: "id"},
			{Header: "Trabajador", Field: "nombre_t"},
			{Header: "Puesto", Field: "puesto"},
			{Header: "Pago", Field: "pago", Format: FormatMoney},
			{Header: "Mes", Field: "mes"},
			{Header: "Estado", Field: "pagado", Format: FormatStatus, Status: &StatusSpec{
				TrueLabel: "Pagado", FalseLabel: "Pendiente",
				TrueClass: "status-paid", FalseClass: "status-pending",
			}},
		},
		Fields: []Field{
			{Name: "user_id", Label: "Trabajador", Input: InputSelect, Required: true, Source: KindWorker},
			{Name: "pago", Label: "Pago", Input: InputNumber, Required: true, Rules: "min=0"},
			{Name: "mes", Label: "Mes", Input: InputText, Required: true},
			{Name: "pagado", Label: "Pagado", Input: InputCheckbox},
		},
	},
	{
		Kind:           KindSchedule,
		Title:          "Horarios",
		Singular:       "Horario",
		CollectionPath: "/horarios",
		ItemPath:       "/horario",
		PrimaryKey:     "user",
		EmptyMessage:   "No hay horarios registrados",
		Columns: []Column{
			{Header: "Trabajador", Field: "nombre_t"},
			{Header: "Lunes", Field: "lunes", Format: FormatWeekday},
			{Header: "Martes", Field: "martes", Format: FormatWeekday},
			{Header: "Miércoles", Field: "miercoles", Format: FormatWeekday},
			{Header: "Jueves", Field: "jueves", Format: FormatWeekday},
			{Header: "Viernes", Field: "viernes", Format: FormatWeekday},
			{Header: "Sábado", Field: "sabado", Format: FormatWeekday},
			{Header: "Domingo", Field: "domingo", Format: FormatWeekday},
		},
		Fields: []Field{
			{Name: "user", Label: "Trabajador", Input: InputSelect, Required: true, Source: KindWorker},
			{Name: "lunes", Label: "Lunes", Input: InputText},
			{Name: "martes", Label: "Martes", Input: InputText},
			{Name: "miercoles", Label: "Miércoles", Input: InputText},
			{Name: "jueves", Label: "Jueves", Input: InputText},
			{Name: "viernes", Label: "Viernes", Input: InputText},
			{Name: "sabado", Label: "Sábado", Input: InputText},
			{Name: "domingo", Label: "Domingo", Input: InputText},
		},
	},
	{
		Kind:           KindTask,
		Title:          "Tareas",
		Singular:       "Tarea",
		Feminine:       true,
		CollectionPath: "/tareas",
		ItemPath:       "/tarea",
		PrimaryKey:     "id",
		EmptyMessage:   "No hay tareas registradas",
		Columns: []Column{
			{Header: "ID", Field: "id"},
			{Header: "Trabajador", Field: "nombre_t"},
			{Header: "Puesto", Field: "puesto"},
			{Header: "Tarea", Field: "tarea"},
			{Header: "Turno", Field: "turno", Format: FormatBadge},
			{Header: "Estado", Field: "realizado", Format: FormatStatus, Status: &StatusSpec{
				TrueLabel: "Completada", FalseLabel: "Pendiente",
				TrueClass: "status-completed", FalseClass: "status-pending",
			}},
		},
		Fields: []Field{
			{Name: "user_id", Label: "Trabajador", Input: InputSelect, Required: true, Source: KindWorker},
			{Name: "tarea", Label: "Tarea", Input: InputText, Required: true},
			{Name: "turno", Label: "Turno", Input: InputText, Required: true},
			{Name: "realizado", Label: "Realizada", Input: InputCheckbox},
		},
	},
	{
		Kind:           KindClient,
		Title:          "Clientes",
		Singular:       "Cliente",
		CollectionPath: "/clientes",
		ItemPath:       "/cliente",
		PrimaryKey:     "cliente_id",
		EmptyMessage:   "No hay clientes registrados",
		SelectTargets:  []SelectTarget{{ElementID: "venta_cliente_id"}},
		OptionLabel:    []string{"nombre"},
		OptionPrompt:   "Seleccionar cliente",
		Columns: []Column{
			{Header: "ID", Field: "cliente_id"},
			{Header: "Nombre", Field: "nombre"},
			{Header: "Número", Field: "numero"},
		},
		Fields: []Field{
			{Name: "nombre", Label: "Nombre", Input: InputText, Required: true},
			{Name: "numero", Label: "Número", Input: InputText, Required: true},
		},
	},
	{
		Kind:           KindMenu,
		Title:          "Menú",
		Singular:       "Producto",
		CollectionPath: "/menu",
		ItemPath:       "/menu",
		PrimaryKey:     "producto_id",
		EmptyMessage:   "No hay productos en el menú",
		Columns: []Column{
			{Header: "ID", Field: "producto_id"},
			{Header: "Nombre", Field: "nombre_m"},
			{Header: "Precio", Field: "precio", Format: FormatMoney},
			{Header: "Descripción", Field: "descripcion"},
			{Header: "Ingredientes", Format: FormatIngredient},
		},
		Fields: append([]Field{
			{Name: "nombre_m", Label: "Nombre", Input: InputText, Required: true},
			{Name: "precio", Label: "Precio", Input: InputNumber, Required: true, Rules: "min=0"},
			{Name: "descripcion", Label: "Descripción", Input: InputTextarea, Required: true},
		}, ingredientFields()...),
	},
	{
		Kind:           KindSale,
		Title:          "Ventas",
		Singular:       "Venta",
		Feminine:       true,
		CollectionPath: "/ventas",
		ItemPath:       "/venta",
		PrimaryKey:     "venta_id",
		EmptyMessage:   "No hay ventas registradas",
		Columns: []Column{
			{Header: "ID", Field: "venta_id"},
			{Header: "Producto", Field: "nombre_m"},
			{Header: "Precio", Field: "precio", Format: FormatMoney},
			{Header: "Cliente", Field: "cliente_id", Format: FormatClientRef},
		},
		Fields: []Field{
			{Name: "nombre_m", Label: "Producto", Input: InputText, Required: true},
			{Name: "precio", Label: "Precio", Input: InputNumber, Required: true, Rules: "min=0"},
			{Name: "cliente_id", Label: "Cliente", Input: InputSelect, Required: true, Source: KindClient},
		},
	},
}

func ingredientFields() []Field {
	fields := make([]Field, 0, len(Ingredients))
	for _, ing := range Ingredients {
		fields = append(fields, Field{Name: ing.Field, Label: ing.Label, Input: InputCheckbox})
	}
	return fields
}

// Descriptors returns all ten kinds in dashboard order.
func Descriptors() []Descriptor {
	return descriptors
}

// ByKind looks a descriptor up by its kind name.
func ByKind(kind Kind) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Kind == kind {
			return d, true
		}
	}
	return Descriptor{}, false
}
