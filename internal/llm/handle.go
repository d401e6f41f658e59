package llm

import (
	"sync"

	"github.com/erezadam/GymIq-sub000/internal/config"
)

// The process holds one LM client handle, constructed lazily on first use
// and reused for the process lifetime. Configure must run during startup;
// Default is safe for concurrent use afterwards.
var (
	handleMu   sync.Mutex
	handleOnce sync.Once
	handleCfg  config.LLMConfig
	handle     Client
)

// Configure records the LM configuration the default handle is built from.
func Configure(cfg config.LLMConfig) {
	handleMu.Lock()
	defer handleMu.Unlock()
	handleCfg = cfg
}

// Default returns the process-wide client, constructing it on first call.
func Default() Client {
	handleOnce.Do(func() {
		handleMu.Lock()
		defer handleMu.Unlock()
		handle = New(handleCfg)
	})
	return handle
}

// New constructs a client for the configured provider.
func New(cfg config.LLMConfig) Client {
	if cfg.Provider == "rest" {
		return NewRESTClient(cfg)
	}
	return NewOpenAIClient(cfg)
}

// Reset tears down the default handle. Test hook; production code
// constructs the handle once and never resets it.
func Reset() {
	handleMu.Lock()
	defer handleMu.Unlock()
	handleOnce = sync.Once{}
	handle = nil
}
