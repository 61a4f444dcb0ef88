package arch

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/smkm/arch/x86"
	"github.com/lunixbochs/smkm/arch/x86_64"
	"github.com/lunixbochs/smkm/models"
)

var archMap = map[string]*models.Arch{
	"x86":    x86.Arch,
	"x86_64": x86_64.Arch,
}

// GetArch returns the profile for a named architecture.
func GetArch(name string) (*models.Arch, error) {
	if a, ok := archMap[name]; ok {
		return a, nil
	}
	return nil, errors.Errorf("arch '%s' not found", name)
}
