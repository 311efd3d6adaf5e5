package service

// CanView decide acceso de lectura a un recurso: el dueño siempre puede,
// cualquiera puede si el recurso es público.
func CanView(requesterID, ownerID string, isPublic bool) bool {
	if isPublic {
		return true
	}
	return requesterID != "" && requesterID == ownerID
}

// CanModify decide acceso de escritura: solo el dueño exacto, sin importar
// la visibilidad pública del recurso.
func CanModify(requesterID, ownerID string) bool {
	return requesterID != "" && requesterID == ownerID
}
