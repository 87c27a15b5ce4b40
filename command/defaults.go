package command

import "github.com/Konsultn-Engineering/sqlcmd/naming"

// Defaults returns the canonical command templates for an entity name, keyed
// "<table>_insert", "<table>_update", "<table>_select" and "<table>_delete".
// The table name is derived with the usual snake_case plural convention, so
// Defaults("User") scaffolds commands for the users table.
//
// Insert templates carry the two %s slots the insert builder fills (column
// list, placeholder list). Update and delete templates are prefixes the
// update builder appends SET/WHERE clauses to.
func Defaults(entity string) map[Identifier]string {
	table := naming.TableName(entity)
	return map[Identifier]string{
		Identifier(table + "_insert"): "INSERT INTO " + table + " (%s) VALUES (%s)",
		Identifier(table + "_update"): "UPDATE " + table + " ",
		Identifier(table + "_select"): "SELECT * FROM " + table,
		Identifier(table + "_delete"): "DELETE FROM " + table + " ",
	}
}

// SetDefaults registers the Defaults templates for entity on r, overwriting
// any identifiers already present.
func (r *Registry) SetDefaults(entity string) {
	for id, tmpl := range Defaults(entity) {
		r.Set(id, tmpl)
	}
}
