package nodes

type Node interface {
	Start() error
	Stop() error
}
