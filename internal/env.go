package internal

// Env tells where a render pass runs.
// The server renders every request on a fresh scope; the client keeps one
// scope per session and replaces it on navigation.
type Env string

const (
	EnvServer Env = "server"
	EnvClient Env = "client"
)

func (e Env) IsServer() bool { return e != EnvClient }
func (e Env) IsClient() bool { return e == EnvClient }

func (e Env) String() string {
	if e == "" {
		return string(EnvServer)
	}
	return string(e)
}
