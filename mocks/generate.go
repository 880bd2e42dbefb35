package mocks

//go:generate mockgen -destination=./mock_sizing.go -package=mocks github.com/rxtech-lab/argo-execution/internal/sizing Portfolio,PriceSource,HoldingsAdapter
//go:generate mockgen -destination=./mock_chain.go -package=mocks github.com/rxtech-lab/argo-execution/internal/chain OrderCreator
//go:generate mockgen -destination=./mock_waiter.go -package=mocks github.com/rxtech-lab/argo-execution/internal/waiter OrderStateReader,OpenOrdersSource
//go:generate mockgen -destination=./mock_mode.go -package=mocks github.com/rxtech-lab/argo-execution/internal/types ModeProvider
