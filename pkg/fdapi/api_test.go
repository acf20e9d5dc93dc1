package fdapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmz/fdbook/pkg/logger"
	"github.com/tokmz/fdbook/pkg/request"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*API, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	log, err := logger.NewWithOptions(
		logger.WithLevel(logger.DebugLevel),
		logger.WithOutput(&buf),
		logger.WithStacktrace(false),
	)
	require.NoError(t, err)

	client := request.New(request.WithBaseURL(srv.URL+"/api"), request.WithLogger(log))
	return New(client), &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestBookFD(t *testing.T) {
	api, buf := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/fd/book", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"amount":1000,"tenureMonths":12}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"fd-1","amount":1000}`))
	})

	payload, err := api.BookFD(context.Background(), map[string]any{"amount": 1000, "tenureMonths": 12})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"fd-1","amount":1000}`, string(payload))

	id, err := payload.DepositID()
	require.NoError(t, err)
	assert.Equal(t, ID("fd-1"), id)

	lines := logLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "API Request", lines[0]["message"])
	assert.Equal(t, PathBook, lines[0]["url"])
	assert.Equal(t, "DEBUG", lines[1]["level"])
	assert.Equal(t, "API Response", lines[1]["message"])
	assert.Equal(t, float64(201), lines[1]["status"])
}

func TestGetFDs(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fd/user/17", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"ok","data":[
			{"fixedDepositId":3,"userId":17,"amount":5000,"tenureMonths":24,"scheme":"Tax Saver","interestRate":7.2,"status":"ACTIVE"},
			{"fixedDepositId":4,"userId":17,"amount":1000,"tenureMonths":6,"scheme":"Regular Saver","interestRate":6.5,"status":"MATURED"}
		]}`))
	})

	payload, err := api.GetFDs(context.Background(), "17")
	require.NoError(t, err)

	list, err := payload.Deposits()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ID("3"), list[0].ID)
	assert.Equal(t, ID("17"), list[0].UserID)
	assert.Equal(t, StatusActive, list[0].Status)
	assert.Equal(t, 7.2, list[0].InterestRate)
	assert.Equal(t, StatusMatured, list[1].Status)
}

func TestGetFDs_ServerError(t *testing.T) {
	api, buf := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"message":"db down"}`))
	})

	payload, err := api.GetFDs(context.Background(), "user-42")
	require.Error(t, err)
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, request.ErrHTTPStatus)

	var reqErr *request.Error
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, request.KindHTTPStatus, reqErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)

	var errorLines []map[string]any
	for _, line := range logLines(t, buf) {
		if line["level"] == "ERROR" {
			errorLines = append(errorLines, line)
		}
	}
	require.Len(t, errorLines, 1)
	assert.Equal(t, "/fd/user/user-42", errorLines[0]["endpoint"])
	assert.Equal(t, "API request failed: /fd/user/user-42", errorLines[0]["message"])
	assert.Equal(t, float64(500), errorLines[0]["http_status"])
}

func TestUserPath(t *testing.T) {
	assert.Equal(t, "/fd/user/user-42", UserPath("user-42"))
	assert.Equal(t, "/fd/user/a%2Fb", UserPath("a/b"))
}

func TestPayload(t *testing.T) {
	t.Run("envelope", func(t *testing.T) {
		p := Payload(`{"success":true,"message":"Fixed deposit booked successfully.","data":{"fixedDepositId":9,"amount":2500}}`)
		env, ok := p.Envelope()
		require.True(t, ok)
		assert.Equal(t, "Fixed deposit booked successfully.", env.Message)

		fd, err := p.Deposit()
		require.NoError(t, err)
		assert.Equal(t, ID("9"), fd.ID)
		assert.Equal(t, 2500.0, fd.Amount)
	})

	t.Run("rejected", func(t *testing.T) {
		p := Payload(`{"success":false,"message":"Invalid deposit amount. Minimum amount should be 1000."}`)
		_, err := p.Deposit()
		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "Minimum amount")
	})

	t.Run("bare", func(t *testing.T) {
		p := Payload(`{"id":"fd-7"}`)
		_, ok := p.Envelope()
		assert.False(t, ok)
		id, err := p.DepositID()
		require.NoError(t, err)
		assert.Equal(t, ID("fd-7"), id)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Payload(nil).Deposits()
		assert.ErrorIs(t, err, ErrDecode)

		out, err := json.Marshal(map[string]Payload{"data": nil})
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":null}`, string(out))
	})

	t.Run("marshal", func(t *testing.T) {
		out, err := json.Marshal(map[string]Payload{"data": Payload(`{"id":1}`)})
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":{"id":1}}`, string(out))
	})
}

func TestID(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"fd-1","b":17,"c":null}`), &v))
	assert.Equal(t, ID("fd-1"), v.A)
	assert.Equal(t, ID("17"), v.B)
	assert.Equal(t, ID(""), v.C)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"fd-1","b":17,"c":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))

	tests := []struct {
		id   ID
		want string
	}{
		{"fd-1", `"fd-1"`},
		{"17", `17`},
		{"-5", `-5`},
		{"0", `0`},
		{"007", `"007"`},
		{"+5", `"+5"`},
		{"-0", `"-0"`},
		{"92233720368547758070", `"92233720368547758070"`},
		{"", `null`},
	}
	for _, tt := range tests {
		out, err := json.Marshal(tt.id)
		require.NoError(t, err, tt.id)
		assert.Equal(t, tt.want, string(out), tt.id)
	}
}

func TestIDRoundTrip(t *testing.T) {
	inputs := []string{
		`"fd-1"`, `17`, `"17"`, `0`, `-5`, `"007"`, `"+5"`, `"-0"`, `"00"`,
		`9223372036854775807`, `-9223372036854775808`, `92233720368547758070`,
		`1e3`, `1.50`, `" 12"`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			var first ID
			require.NoError(t, json.Unmarshal([]byte(in), &first))

			out, err := json.Marshal(first)
			require.NoError(t, err)

			var second ID
			require.NoError(t, json.Unmarshal(out, &second))
			assert.Equal(t, first, second)
		})
	}
}

func TestBookFD_LeadingZeroUserID(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"userId":"007","amount":1000,"scheme":"Tax Saver","tenureMonths":12}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"fixedDepositId":"007","userId":"007","amount":1000}`))
	})

	payload, err := api.BookFD(context.Background(), BookRequest{UserID: "007", Amount: 1000, Scheme: "Tax Saver", TenureMonths: 12})
	require.NoError(t, err)

	fd, err := payload.Deposit()
	require.NoError(t, err)
	assert.Equal(t, ID("007"), fd.ID)

	out, err := json.Marshal(fd)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"fixedDepositId":"007"`)
}

func TestBookRequestValidate(t *testing.T) {
	valid := BookRequest{UserID: "17", Amount: 1000, Scheme: "Tax Saver", TenureMonths: 12}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		field string
		edit  func(r *BookRequest)
	}{
		{"missing user", "userId", func(r *BookRequest) { r.UserID = "" }},
		{"amount below minimum", "amount", func(r *BookRequest) { r.Amount = 999.99 }},
		{"unknown scheme", "scheme", func(r *BookRequest) { r.Scheme = "Gold Saver" }},
		{"tenure too long", "tenureMonths", func(r *BookRequest) { r.TenureMonths = 121 }},
		{"tenure missing", "tenureMonths", func(r *BookRequest) { r.TenureMonths = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.edit(&r)
			err := r.Validate()
			require.Error(t, err)
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestSchemes(t *testing.T) {
	list := Schemes()
	require.Len(t, list, 4)
	list[0].Rate = 0
	assert.Equal(t, 6.5, Schemes()[0].Rate)

	s, ok := LookupScheme("premium saver")
	require.True(t, ok)
	assert.Equal(t, 7.0, s.Rate)

	_, ok = LookupScheme("Gold Saver")
	assert.False(t, ok)
}
