package fact

// ModuleName identifies a namespace of facts. Modules are the top-level keys
// of a results record.
type ModuleName string

// FactName identifies a fact within its module.
type FactName string

// EntityName identifies an input collection that per-entity facts expand
// over.
type EntityName string

// InputName identifies a declared input field.
type InputName string

// EntityID is the non-negative index of an entity in its input collection.
type EntityID int

// NoEntity marks a fact instance that is not bound to an entity.
const NoEntity EntityID = -1
