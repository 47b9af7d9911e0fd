// Package catalog contiene la lógica pura de reconciliación de variaciones:
// el diff entre la lista de variaciones enviada en un update y el conjunto
// persistido, sin tocar DB ni filesystem.
package catalog

// Entry es una variación enviada en el payload de update. ID vacío significa
// "nueva variación".
type Entry struct {
	ID string
}

// Plan resultado de la reconciliación. Los índices referencian la lista
// enviada; DeleteIDs referencia filas persistidas.
type Plan struct {
	UpdateIdx []int    // entradas con ID existente → update in place
	InsertIdx []int    // entradas sin ID → insert
	DeleteIDs []string // ids persistidos no tocados → delete (fila + imagen)
	Unknown   []string // ids enviados que no pertenecen al producto
}

// Reconcile calcula el plan de sincronización entre las variaciones
// persistidas (existingIDs) y las enviadas (submitted).
//
// Reglas:
//  1. Entrada con ID presente en existingIDs → update; el id queda "tocado".
//  2. Entrada sin ID → insert.
//  3. Diferencia de conjuntos: persistidos menos tocados → delete.
//  4. Entrada con ID que no pertenece al producto → Unknown (el caller
//     decide; aquí nunca se convierte en update ni en delete).
func Reconcile(existingIDs []string, submitted []Entry) Plan {
	existing := make(map[string]bool, len(existingIDs))
	for _, id := range existingIDs {
		existing[id] = true
	}

	plan := Plan{}
	touched := make(map[string]bool, len(submitted))

	for i, e := range submitted {
		switch {
		case e.ID == "":
			plan.InsertIdx = append(plan.InsertIdx, i)
		case existing[e.ID]:
			plan.UpdateIdx = append(plan.UpdateIdx, i)
			touched[e.ID] = true
		default:
			plan.Unknown = append(plan.Unknown, e.ID)
		}
	}

	// Respetar el orden persistido para que los deletes sean deterministas.
	for _, id := range existingIDs {
		if !touched[id] {
			plan.DeleteIDs = append(plan.DeleteIDs, id)
		}
	}

	return plan
}
