package common

type Module string

const (
	ModulePublicSale Module = "publicsale"
)

func (m Module) String() string {
	return string(m)
}
