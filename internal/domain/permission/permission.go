// Package permission implementa el evaluador de permisos: una función pura
// (acción, rol) → permitido/denegado sobre un Ruleset inmutable e inyectado.
// Sin estado global: cada consumidor recibe su Ruleset en construcción.
package permission

import "github.com/jhoicas/stock-atelier/internal/domain/entity"

// Action identifica una operación protegida de la aplicación.
type Action string

// Acciones protegidas.
const (
	ViewArticle    Action = "viewDetailArticle"
	EditArticle    Action = "editArticle"
	AddArticle     Action = "addArticle"
	ArchiveArticle Action = "archiveArticle"
	InputMovement  Action = "inputMovement"   // ENTREE
	OutputMovement Action = "outputMovement"  // SORTIE
	ViewMovements  Action = "viewArticleMovements"
)

// Ruleset mapea cada acción a los roles que la pueden ejecutar.
// Es un valor: se construye una vez y no se muta después.
type Ruleset map[Action][]string

// Default devuelve la tabla de reglas de referencia.
//
//	acción            owner manager user
//	ver detalle        ✓     ✓      ✓
//	editar artículo    ✓     ✓      ✗
//	crear artículo     ✓     ✓      ✗
//	archivar artículo  ✓     ✗      ✗
//	entrada (ENTREE)   ✓     ✓      ✗
//	salida  (SORTIE)   ✓     ✓      ✓
//	ver movimientos    ✓     ✓      ✗
func Default() Ruleset {
	return Ruleset{
		ViewArticle:    {entity.RoleOwner, entity.RoleManager, entity.RoleUser},
		EditArticle:    {entity.RoleOwner, entity.RoleManager},
		AddArticle:     {entity.RoleOwner, entity.RoleManager},
		ArchiveArticle: {entity.RoleOwner},
		InputMovement:  {entity.RoleOwner, entity.RoleManager},
		OutputMovement: {entity.RoleOwner, entity.RoleManager, entity.RoleUser},
		ViewMovements:  {entity.RoleOwner, entity.RoleManager},
	}
}

// Allowed indica si el rol puede ejecutar la acción.
// Rol vacío (no autenticado) siempre se deniega; acción desconocida también.
func (r Ruleset) Allowed(action Action, role string) bool {
	if role == "" {
		return false
	}
	for _, allowed := range r[action] {
		if allowed == role {
			return true
		}
	}
	return false
}
