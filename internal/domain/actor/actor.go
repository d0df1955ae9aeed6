package actor

// Actor is the authenticated caller, resolved server-side from the bearer
// token. Every coordinator call takes it explicitly; there is no ambient
// session state in the engine.
type Actor struct {
	ID    string
	Name  string
	Email string
	Role  string
}
