package query

// Column identifica una columna física de una tabla.
type Column struct {
	Table string
	Name  string
}

// Qualified devuelve "tabla.columna", necesario cuando hay joins con nombres repetidos.
func (c Column) Qualified() string {
	return c.Table + "." + c.Name
}

// Relation describe cómo unir la entidad con otra.
type Relation struct {
	Name   string
	Target *Entity
	On     string
}

// Entity es el registro de campos de una tabla: nombre de campo -> columna.
// Se construye una vez por entidad y sustituye al acceso dinámico por nombre.
type Entity struct {
	Table     string
	columns   map[string]Column
	relations []Relation
}

// NewEntity registra los campos indicados con columnas del mismo nombre.
func NewEntity(table string, fields ...string) *Entity {
	e := &Entity{Table: table, columns: make(map[string]Column, len(fields))}
	for _, f := range fields {
		e.columns[f] = Column{Table: table, Name: f}
	}
	return e
}

// WithColumn registra un campo cuyo nombre público difiere de la columna.
func (e *Entity) WithColumn(field, column string) *Entity {
	e.columns[field] = Column{Table: e.Table, Name: column}
	return e
}

// WithRelation registra un join explícito hacia target.
func (e *Entity) WithRelation(name string, target *Entity, on string) *Entity {
	e.relations = append(e.relations, Relation{Name: name, Target: target, On: on})
	return e
}

// Column resuelve un campo. Los campos desconocidos devuelven false.
func (e *Entity) Column(field string) (Column, bool) {
	c, ok := e.columns[field]
	return c, ok
}

// Columns devuelve las columnas cualificadas de los campos dados, en orden.
func (e *Entity) Columns(fields ...string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if c, ok := e.columns[f]; ok {
			out = append(out, c.Qualified())
		}
	}
	return out
}

// Relation busca una relación por nombre.
func (e *Entity) Relation(name string) (Relation, bool) {
	for _, r := range e.relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// relationTo devuelve la primera relación directa hacia target.
func (e *Entity) relationTo(target *Entity) (Relation, bool) {
	for _, r := range e.relations {
		if r.Target == target {
			return r, true
		}
	}
	return Relation{}, false
}
