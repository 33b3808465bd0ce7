package output

import "github.com/akshit-diro/autonav-test-platform-form-filling-sub000/internal/domain/entity"

type ScenarioSource interface {
	Lookup(id string) (entity.ScenarioMeta, bool)
	List() []entity.ScenarioMeta
}
