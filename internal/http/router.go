package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（与前端固定路由对齐，避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterPatientRoutes 病人端路由
func (r *Router) RegisterPatientRoutes(chat *ChatHandler, patient *PatientHandler) {
	r.Handle("/patient/api/v1/chat/messages", methodOnly(http.MethodPost, chat.PostMessage))
	r.Handle("/patient/api/v1/chat/history", methodOnly(http.MethodGet, chat.GetHistory))
	r.Handle("/patient/api/v1/reports", methodOnly(http.MethodGet, patient.ListReports))
	r.Handle("/patient/api/v1/education", methodOnly(http.MethodGet, patient.Education))
}

// RegisterManagerRoutes 个管师端路由
func (r *Router) RegisterManagerRoutes(alert *AlertHandler, manager *ManagerHandler) {
	r.Handle("/manager/api/v1/alerts", methodOnly(http.MethodGet, alert.ListAlerts))

	// alerts/{id}/contact | alerts/{id}/resolve
	r.Handle("/manager/api/v1/alerts/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rest := strings.TrimPrefix(req.URL.Path, "/manager/api/v1/alerts/")
		parts := strings.Split(rest, "/")
		if len(parts) != 2 || parts[0] == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch parts[1] {
		case "contact":
			alert.Contact(w, req, parts[0])
		case "resolve":
			alert.Resolve(w, req, parts[0])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	r.Handle("/manager/api/v1/summary", methodOnly(http.MethodGet, alert.Summary))
	r.Handle("/manager/api/v1/patients", methodOnly(http.MethodGet, manager.ListPatients))
	r.Handle("/manager/api/v1/schedule", methodOnly(http.MethodGet, manager.Schedule))

	r.Handle("/manager/api/v1/interventions", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			manager.ListInterventions(w, req)
		case http.MethodPost:
			manager.CreateIntervention(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

// RegisterDataRoutes 研究数据看板路由
func (r *Router) RegisterDataRoutes(data *DataHandler) {
	r.Handle("/data/api/v1/compliance", methodOnly(http.MethodGet, data.Compliance))
	r.Handle("/data/api/v1/trend", methodOnly(http.MethodGet, data.Trend))
}
