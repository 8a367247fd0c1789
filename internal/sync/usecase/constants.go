package usecase

// Attribute names in the requisition collections. These must match the remote
// collection properties exactly; both the primary and the mirror collection
// are expected to declare compatible attributes.
const (
	PropCorrelation        = "Folio de solicitud"
	PropRequestedBy        = "Nombre del solicitante"
	PropRequestDate        = "Fecha de solicitud"
	PropSupplier           = "Proveedor"
	PropDepartment         = "Departamento/Área"
	PropUrgent             = "Urgente"
	PropRecovered          = "Recuperado"
	PropStatus             = "Estatus"
	PropNotes              = "Especificaciones adicionales"
	PropQuantity           = "Cantidad solicitada"
	PropMaterialKind       = "Tipo de material"
	PropMaterialName       = "Nombre del material"
	PropUnit               = "Unidad de medida"
	PropProductID          = "ID de producto"
	PropProductDescription = "Descripción"
	PropLength             = "Largo (dimensión)"
	PropWidth              = "Ancho (dimensión)"
	PropHeight             = "Alto (dimensión)"
	PropDiameter           = "Diametro (dimensión)"

	// Relation attributes on requisition records
	PropWorkItemRelation = "Partida"
	PropProjectRelation  = "Proyecto"

	// Lookup attributes in the work item and project collections
	PropWorkItemCode = "ID de partida"
	PropProjectCode  = "ID del proyecto"

	// Every new requisition enters the workflow in this status.
	defaultStatus = "Pendiente"
)

const (
	// defaultPageSize is the query page size for full retrievals.
	defaultPageSize = 100
	// lookupPageSize is intentionally small: reference lookups only need
	// existence and ambiguity detection, not full retrieval.
	lookupPageSize = 2
)
