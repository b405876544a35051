package mocks

//go:generate mockgen -destination=./mock_random_source.go -package=mocks github.com/rxtech-lab/argo-forecast/internal/forecast RandomSource
//go:generate mockgen -destination=./mock_sequence_model.go -package=mocks github.com/rxtech-lab/argo-forecast/internal/forecast SequenceModel
//go:generate mockgen -destination=./mock_source.go -package=mocks github.com/rxtech-lab/argo-forecast/pkg/source Source
