package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/kubev2v/migration-scenario-planner/pkg/requestid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("scenarios"))

			err := kp.Write(context.TODO(), "kind1", bytes.NewReader([]byte(`"msg1"`)))
			Expect(err).To(BeNil())
			err = kp.Write(context.TODO(), "kind2", bytes.NewReader([]byte(`"msg2"`)))
			Expect(err).To(BeNil())

			Eventually(w.Len).WithTimeout(time.Second).Should(Equal(2))
			Expect(kp.Close()).To(Succeed())

			msgs := w.All()
			Expect(msgs[0].Type()).To(Equal("kind1"))
			Expect(msgs[1].Type()).To(Equal("kind2"))
			Expect(msgs[0].Source()).To(Equal(defaultSource))
			Expect(w.topics).To(HaveEach("scenarios"))
		})

		It("publishes a json payload with the request id", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithSource("tests"))

			id := uuid.New()
			ctx := requestid.ToContext(context.TODO(), "req-42")
			Expect(kp.Publish(ctx, ScenarioEvaluatedKind, ScenarioEvaluatedEvent{ScenarioID: id, Name: "baseline", Score: 97.5})).To(Succeed())
			Expect(kp.Close()).To(Succeed())

			Expect(w.Len()).To(Equal(1))
			e := w.All()[0]
			Expect(e.Type()).To(Equal(ScenarioEvaluatedKind))
			Expect(e.Source()).To(Equal("tests"))
			Expect(e.Extensions()[requestIDExtension]).To(Equal("req-42"))

			var payload ScenarioEvaluatedEvent
			Expect(json.Unmarshal(e.Data(), &payload)).To(Succeed())
			Expect(payload.ScenarioID).To(Equal(id))
			Expect(payload.Score).To(Equal(97.5))
		})

		It("flushes pending messages on close", func() {
			w := newTestWriter()
			w.delay = 10 * time.Millisecond
			kp := NewEventProducer(w)

			for range 5 {
				Expect(kp.Publish(context.TODO(), WavesGeneratedKind, WavesGeneratedEvent{Waves: 2})).To(Succeed())
			}
			Expect(kp.Close()).To(Succeed())
			Expect(w.Len()).To(Equal(5))
			Expect(w.closed).To(BeTrue())
		})

		It("keeps going when the writer fails", func() {
			w := newTestWriter()
			w.err = errors.New("sink unavailable")
			kp := NewEventProducer(w)

			Expect(kp.Publish(context.TODO(), ScenarioDeletedKind, ScenarioDeletedEvent{Name: "a"})).To(Succeed())
			Expect(kp.Publish(context.TODO(), ScenarioDeletedKind, ScenarioDeletedEvent{Name: "b"})).To(Succeed())
			Expect(kp.Close()).To(Succeed())
			Expect(w.attempts).To(Equal(2))
		})
	})

	Context("http writer", func() {
		It("posts the event to the sink", func() {
			received := make(chan *http.Request, 1)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				received <- r
				w.WriteHeader(http.StatusAccepted)
			}))
			defer srv.Close()

			hw, err := NewHTTPWriter(srv.URL)
			Expect(err).To(BeNil())

			e := cloudevents.NewEvent()
			e.SetID("1")
			e.SetSource("tests")
			e.SetType(ScenarioEvaluatedKind)
			Expect(e.SetData(cloudevents.ApplicationJSON, []byte(`{"name":"baseline"}`))).To(Succeed())

			Expect(hw.Write(context.TODO(), "scenarios", e)).To(Succeed())

			var r *http.Request
			Eventually(received).Should(Receive(&r))
			Expect(r.Header.Get("Ce-Type")).To(Equal(ScenarioEvaluatedKind))
			Expect(r.Header.Get("Ce-Topic")).To(Equal("scenarios"))
		})

		It("fails when the sink rejects the event", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			hw, err := NewHTTPWriter(srv.URL)
			Expect(err).To(BeNil())

			e := cloudevents.NewEvent()
			e.SetID("1")
			e.SetSource("tests")
			e.SetType(ScenarioEvaluatedKind)
			Expect(hw.Write(context.TODO(), "scenarios", e)).NotTo(Succeed())
		})
	})
})

type testwriter struct {
	lock     sync.Mutex
	messages []cloudevents.Event
	topics   []string
	attempts int
	delay    time.Duration
	err      error
	closed   bool
}

func newTestWriter() *testwriter {
	return &testwriter{messages: []cloudevents.Event{}}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	time.Sleep(t.delay)
	t.lock.Lock()
	defer t.lock.Unlock()
	t.attempts++
	if t.err != nil {
		return t.err
	}
	t.messages = append(t.messages, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.messages)
}

func (t *testwriter) All() []cloudevents.Event {
	t.lock.Lock()
	defer t.lock.Unlock()
	return append([]cloudevents.Event(nil), t.messages...)
}

func (t *testwriter) Close(_ context.Context) error {
	t.closed = true
	return nil
}
