package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vango-lite/internal/config"
	"github.com/vango-dev/vango-lite/pkg/host/memhost"
	"github.com/vango-dev/vango-lite/pkg/reactive"
	"github.com/vango-dev/vango-lite/pkg/telemetry"
	"github.com/vango-dev/vango-lite/pkg/vdom"
)

// historySize is how many recent counts the demo lists.
const historySize = 5

func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live counter demo",
		Long: `Run a counter component on the server and stream every host edit
it makes to connected browsers over WebSocket.

Examples:
  vango-lite serve
  vango-lite serve --port=9000
  vango-lite serve --host=0.0.0.0 --no-metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Serve.Port = port
			}
			if host != "" {
				cfg.Serve.Host = host
			}
			if noMetrics {
				cfg.Metrics.Enabled = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cfg.NewLogger(os.Stderr))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from "+config.ConfigFileName+")")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Disable the Prometheus endpoint")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := newDemo(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      d.routes(),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	success("Serving on %s", cfg.URL())
	if cfg.Metrics.Enabled {
		info("Metrics at %s%s", cfg.URL(), cfg.Metrics.Path)
	} else {
		warn("Metrics disabled")
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.closeClients()
	return srv.Shutdown(shutdownCtx)
}

// counter is the demo's stateful component: a count, buttons that change
// it, and a keyed list of recent values.
type counter struct {
	tracker *reactive.Tracker
	count   *reactive.Ref[int]
	history *reactive.Ref[[]entry]
	seq     int
	prefix  string
}

// entry is one recorded count; seq keys it in the history list.
type entry struct {
	seq   int
	value int
}

func (c *counter) add(delta int) {
	c.tracker.Batch(func() {
		c.count.Update(func(n int) int { return n + delta })
		c.seq++
		h := append(append([]entry(nil), c.history.Peek()...), entry{seq: c.seq, value: c.count.Peek()})
		if len(h) > historySize {
			h = h[len(h)-historySize:]
		}
		c.history.Set(h)
	})
}

func (c *counter) reset() {
	c.tracker.Batch(func() {
		c.count.Set(0)
		c.history.Set(nil)
	})
}

func (c *counter) Render() *vdom.VNode {
	n := c.count.Get()
	recent := c.history.Get()

	items := make([]*vdom.VNode, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		items = append(items, vdom.Li(vdom.Key(recent[i].seq), strconv.Itoa(recent[i].value)))
	}

	var disabled any
	if n == 0 {
		disabled = "disabled"
	}

	return vdom.Div(vdom.ID("counter"),
		vdom.H1(fmt.Sprintf("Count: %d", n)),
		vdom.Button(
			vdom.Prop("data-action", "increment"),
			vdom.Prop(c.prefix+"click", func() { c.add(1) }),
			"+1",
		),
		vdom.Button(
			vdom.Prop("data-action", "decrement"),
			vdom.Prop(c.prefix+"click", func() { c.add(-1) }),
			"-1",
		),
		vdom.Button(
			vdom.Prop("data-action", "reset"),
			vdom.Prop("disabled", disabled),
			vdom.Prop(c.prefix+"click", c.reset),
			"reset",
		),
		vdom.Ul(vdom.Class("history"), items),
	)
}

// update is the message sent to clients after every change.
type update struct {
	Count int      `json:"count"`
	HTML  string   `json:"html"`
	Ops   []string `json:"ops"`
}

// demo owns one document and renderer shared by every client. mu serializes
// all engine calls, including re-renders triggered by event handlers.
type demo struct {
	mu       sync.Mutex
	cfg      *config.Config
	logger   *slog.Logger
	doc      *memhost.Document
	renderer *vdom.Renderer
	counter  *counter
	registry *prometheus.Registry
	upgrader websocket.Upgrader
	clients  mapset.Set[*websocket.Conn]
}

func newDemo(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*demo, error) {
	d := &demo{
		cfg:     cfg,
		logger:  logger,
		doc:     memhost.NewDocument(),
		clients: mapset.NewSet[*websocket.Conn](),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	trackerOpts := []reactive.TrackerOption{reactive.WithLogger(logger)}
	rendererOpts := []vdom.RendererOption{
		vdom.WithLogger(logger),
		vdom.WithEventPrefix(cfg.Render.EventPrefix),
	}
	if cfg.Metrics.Enabled {
		d.registry = prometheus.NewRegistry()
		metrics := telemetry.NewMetrics(
			telemetry.WithRegistry(d.registry),
			telemetry.WithNamespace(cfg.Metrics.Namespace),
		)
		trackerOpts = append(trackerOpts, reactive.WithObserver(metrics))
		rendererOpts = append(rendererOpts, vdom.WithMetrics(metrics))
	}
	tracker := reactive.NewTracker(trackerOpts...)
	rendererOpts = append(rendererOpts, vdom.WithTracker(tracker))
	d.renderer = vdom.NewRenderer(d.doc, rendererOpts...)

	d.counter = &counter{
		tracker: tracker,
		count:   reactive.NewRef(0, reactive.WithTracker(tracker)),
		history: reactive.NewRef[[]entry](nil, reactive.WithTracker(tracker)).
			WithEquals(func(a, b []entry) bool { return len(a) == 0 && len(b) == 0 }),
		prefix: cfg.Render.EventPrefix,
	}

	if err := d.renderer.Render(ctx, vdom.Component(d.counter), d.doc.Body()); err != nil {
		return nil, err
	}
	d.doc.ResetOps()
	return d, nil
}

func (d *demo) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(d.logRequests)

	r.Get("/", d.handleIndex)
	r.Get("/ws", d.handleWS)
	r.Post("/actions/{action}", d.handleAction)
	if d.registry != nil {
		r.Handle(d.cfg.Metrics.Path, promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (d *demo) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		d.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>vango-lite</title></head>
<body>
<div id="app">{{.HTML}}</div>
<h2>Host edits</h2>
<pre id="ops"></pre>
<script>
const app = document.getElementById("app");
const ops = document.getElementById("ops");
app.addEventListener("click", (e) => {
  const action = e.target.dataset && e.target.dataset.action;
  if (action) fetch("/actions/" + action, {method: "POST"});
});
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (e) => {
  const u = JSON.parse(e.data);
  app.innerHTML = u.html;
  if (u.ops && u.ops.length) ops.textContent = u.ops.join("\n") + "\n\n" + ops.textContent;
};
</script>
</body>
</html>
`))

func (d *demo) handleIndex(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	html := d.doc.InnerHTML(d.doc.Body())
	d.mu.Unlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, struct{ HTML template.HTML }{template.HTML(html)}); err != nil {
		d.logger.Error("render index", "error", err)
	}
}

func (d *demo) handleAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")

	d.mu.Lock()
	u, ok := d.dispatch(action)
	if ok {
		d.broadcast(u)
	}
	d.mu.Unlock()

	if !ok {
		http.Error(w, fmt.Sprintf("unknown action %q", action), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(u); err != nil {
		d.logger.Error("encode update", "error", err)
	}
}

// dispatch clicks the button bound to action and returns the resulting
// update. d.mu must be held.
func (d *demo) dispatch(action string) (update, bool) {
	button := findByAttr(d.doc.Body(), "data-action", action)
	if button == nil {
		return update{}, false
	}
	d.doc.ResetOps()
	handled := d.doc.Dispatch(button, "click", nil)
	d.logger.Debug("dispatched event", "action", action, "listeners", handled)
	u := d.snapshot(memhost.Strings(d.doc.Ops()))
	d.doc.ResetOps()
	return u, true
}

// snapshot describes the current document. d.mu must be held.
func (d *demo) snapshot(ops []string) update {
	if ops == nil {
		ops = []string{}
	}
	return update{
		Count: d.counter.count.Peek(),
		HTML:  d.doc.InnerHTML(d.doc.Body()),
		Ops:   ops,
	}
}

func (d *demo) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := d.upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	d.mu.Lock()
	d.clients.Add(conn)
	err = d.send(conn, d.snapshot(nil))
	d.mu.Unlock()
	if err != nil {
		d.drop(conn)
		return
	}
	d.logger.Debug("client connected", "clients", d.clients.Cardinality())

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	d.drop(conn)
}

// broadcast sends u to every client. d.mu must be held.
func (d *demo) broadcast(u update) {
	for _, conn := range d.clients.ToSlice() {
		if err := d.send(conn, u); err != nil {
			d.logger.Debug("dropping client", "error", err)
			d.clients.Remove(conn)
			conn.Close()
		}
	}
}

func (d *demo) send(conn *websocket.Conn, u update) error {
	if timeout := d.cfg.WriteTimeout(); timeout > 0 {
		conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return conn.WriteJSON(u)
}

func (d *demo) drop(conn *websocket.Conn) {
	d.mu.Lock()
	d.clients.Remove(conn)
	d.mu.Unlock()
	conn.Close()
}

func (d *demo) closeClients() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, conn := range d.clients.ToSlice() {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
	d.clients.Clear()
}

// findByAttr returns the first element under n, in document order, whose
// attribute name equals value.
func findByAttr(n *memhost.Node, name, value string) *memhost.Node {
	if v, ok := n.Attr(name); ok && v == value {
		return n
	}
	for _, c := range n.Children() {
		if found := findByAttr(c, name, value); found != nil {
			return found
		}
	}
	return nil
}
