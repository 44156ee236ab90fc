package server_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seniormoment/seniormoment/internal/config"
	"github.com/seniormoment/seniormoment/internal/server"
)

var _ = Describe("Server", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
	})

	register := func(router *gin.RouterGroup) {
		router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"pong": true}) })
		router.GET("/panic", func(c *gin.Context) { panic("handler exploded") })
	}

	serve := func(s *server.Server, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("should refuse a nil configuration", func() {
		_, err := server.NewServer(nil, register)
		Expect(err).To(HaveOccurred())
	})

	It("should mount handlers under /api/v1", func() {
		s, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		Expect(serve(s, "/api/v1/ping").Code).To(Equal(http.StatusOK))
		Expect(serve(s, "/ping").Code).To(Equal(http.StatusNotFound))
	})

	It("should answer unknown routes with JSON", func() {
		s, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		w := serve(s, "/api/v1/nothing")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring(`"error"`))
	})

	It("should recover from handler panics", func() {
		s, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		Expect(serve(s, "/api/v1/panic").Code).To(Equal(http.StatusInternalServerError))
	})

	It("should serve metrics when asked to", func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"}))

		s, err := server.NewServer(cfg, register, server.WithMetrics(reg))
		Expect(err).NotTo(HaveOccurred())

		w := serve(s, "/metrics")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("test_total"))

		s, err = server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())
		Expect(serve(s, "/metrics").Code).To(Equal(http.StatusNotFound))
	})

	It("should start and stop gracefully", func() {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		port := l.Addr().(*net.TCPAddr).Port
		Expect(l.Close()).To(Succeed())

		cfg.Server.HTTPPort = port
		s, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Addr()).To(Equal(fmt.Sprintf("127.0.0.1:%d", port)))

		errCh := make(chan error, 1)
		go func() { errCh <- s.Start(context.Background()) }()

		Eventually(func() error {
			resp, err := http.Get(fmt.Sprintf("http://%s/api/v1/ping", s.Addr()))
			if err != nil {
				return err
			}
			return resp.Body.Close()
		}, 2*time.Second, 20*time.Millisecond).Should(Succeed())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		Expect(s.Stop(ctx)).To(Succeed())
		Eventually(errCh).Should(Receive(BeNil()))
	})
})
