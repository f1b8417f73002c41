package models

// All returns every model managed by auto migration, in dependency order.
func All() []any {
	return []any{
		&Profile{},
		&VideoAsset{},
		&AnalysisResult{},
		&PlayerCard{},
	}
}
