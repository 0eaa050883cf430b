package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"solana-wallet-server-go/internal/keys"
	"solana-wallet-server-go/internal/logger"
	"solana-wallet-server-go/internal/metrics"
)

// Options carries the request-facing settings of the server.
type Options struct {
	Version             string
	MaxBodyBytes        int64
	DerivationPath      string
	MnemonicEntropyBits int
	MetricsPath         string // empty disables /metrics
}

// Server is the HTTP adapter over the wallet operations. It holds no
// per-request state.
type Server struct {
	keys    *keys.Service
	log     *logger.Logger
	metrics *metrics.Metrics
	opts    Options
	router  *mux.Router
}

// NewServer wires the routes. m may be nil.
func NewServer(keySvc *keys.Service, log *logger.Logger, m *metrics.Metrics, opts Options) *Server {
	s := &Server{
		keys:    keySvc,
		log:     log,
		metrics: m,
		opts:    opts,
		router:  mux.NewRouter(),
	}
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, msgNotFound)
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, msgMethod)
	})
	s.RegisterRoutes(s.router)
	return s
}

// RegisterRoutes mounts every endpoint on r.
func (s *Server) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/keypair", s.serve("generate_keypair", s.generateKeypair)).Methods(http.MethodPost)
	r.HandleFunc("/keypair/mnemonic", s.serve("mnemonic_keypair", s.mnemonicKeypair)).Methods(http.MethodPost)

	r.HandleFunc("/message/sign", s.serve("sign_message", s.signMessage)).Methods(http.MethodPost)
	r.HandleFunc("/message/verify", s.serve("verify_message", s.verifyMessage)).Methods(http.MethodPost)

	r.HandleFunc("/token/create", s.serve("create_token", s.createToken)).Methods(http.MethodPost)
	r.HandleFunc("/token/mint", s.serve("mint_token", s.mintToken)).Methods(http.MethodPost)

	r.HandleFunc("/send/sol", s.serve("send_sol", s.sendSol)).Methods(http.MethodPost)
	r.HandleFunc("/send/token", s.serve("send_token", s.sendToken)).Methods(http.MethodPost)

	if s.metrics != nil && s.opts.MetricsPath != "" {
		r.Handle(s.opts.MetricsPath, s.metrics.Handler()).Methods(http.MethodGet)
	}
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = s.recoverPanics(h)
	h = s.observe(h)
	h = requestID(h)
	// outermost, so MaxBytesReader sees net/http's own ResponseWriter
	h = s.limitBody(h)
	return h
}
