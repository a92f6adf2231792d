package units

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cra_backend/internals/features/organization/units/model"
	"cra_backend/internals/helpers/zlog"
)

type UnitSeed struct {
	Name string `json:"name"`
}

// SeedUnitsFromJSON inserts units whose name does not exist yet.
func SeedUnitsFromJSON(db *gorm.DB, filePath string) error {
	zlog.Info("📥 reading units seed", zap.String("file", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	var inputs []UnitSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	inserted := 0
	for _, in := range inputs {
		name := strings.Join(strings.Fields(in.Name), " ")
		if name == "" {
			continue
		}
		var n int64
		if err := db.Model(&model.UnitModel{}).Where("LOWER(unit_name) = LOWER(?)", name).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		if err := db.Create(&model.UnitModel{UnitName: name}).Error; err != nil {
			return fmt.Errorf("insert unit %q: %w", name, err)
		}
		inserted++
	}
	zlog.Info("✅ units seeded", zap.Int("inserted", inserted))
	return nil
}
