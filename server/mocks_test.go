package server

import (
	"context"
	"net"
	"net/http"
	"sync"

	"chartdash/chart"
	"chartdash/chart/message"
	"chartdash/db/charts"
	"chartdash/server/feed"
)

type mockTokenizer struct {
	CreateFunc      func(subject string) (string, error)
	ReadSubjectFunc func(tokenString string) (string, error)
}

func (m mockTokenizer) Create(subject string) (string, error) {
	return m.CreateFunc(subject)
}

func (m mockTokenizer) ReadSubject(tokenString string) (string, error) {
	return m.ReadSubjectFunc(tokenString)
}

type mockChartDao struct {
	saveFunc    func(ctx context.Context, d chart.Definition) error
	listFunc    func(ctx context.Context) ([]chart.Definition, error)
	deleteFunc  func(ctx context.Context, id string) error
	backendFunc func() charts.Backend
}

func (m mockChartDao) Save(ctx context.Context, d chart.Definition) error {
	return m.saveFunc(ctx, d)
}

func (m mockChartDao) List(ctx context.Context) ([]chart.Definition, error) {
	return m.listFunc(ctx)
}

func (m mockChartDao) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m mockChartDao) Backend() charts.Backend {
	return m.backendFunc()
}

type mockFeed struct {
	runFunc       func(ctx context.Context, wg *sync.WaitGroup)
	subscribeFunc func(ctx context.Context, conn feed.Conn) error
}

func (m mockFeed) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.runFunc(ctx, wg)
}

func (m mockFeed) Subscribe(ctx context.Context, conn feed.Conn) error {
	return m.subscribeFunc(ctx, conn)
}

type mockUpgrader struct {
	upgradeFunc func(w http.ResponseWriter, r *http.Request) (feed.Conn, error)
}

func (m mockUpgrader) Upgrade(w http.ResponseWriter, r *http.Request) (feed.Conn, error) {
	return m.upgradeFunc(w, r)
}

type mockPasswordHandler struct {
	isCorrectFunc func(hashedPassword []byte, password string) (bool, error)
}

func (m mockPasswordHandler) IsCorrect(hashedPassword []byte, password string) (bool, error) {
	return m.isCorrectFunc(hashedPassword, password)
}

type mockConn struct {
	closeFunc func() error
}

func (c *mockConn) ReadMessage(m *message.Message) error {
	return nil
}

func (c *mockConn) WriteMessage(m message.Message) error {
	return nil
}

func (c *mockConn) WritePing() error {
	return nil
}

func (c *mockConn) WriteClose(reason string) error {
	return nil
}

func (c *mockConn) IsNormalClose(err error) bool {
	return true
}

func (c *mockConn) RemoteAddr() net.Addr {
	return nil
}

func (c *mockConn) Close() error {
	return c.closeFunc()
}
