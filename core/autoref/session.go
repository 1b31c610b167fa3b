package autoref

import (
	"context"
	"fmt"
	"reflect"

	"auto-reference/core/scene"

	"go.uber.org/zap"
)

// session is the state of one outermost batch.
type session struct {
	engine   *Engine
	ctx      context.Context
	inFlight map[scene.Component]struct{}
	agg      *aggregator
}

func newSession(e *Engine, ctx context.Context) *session {
	return &session{
		engine:   e,
		ctx:      ctx,
		inFlight: make(map[scene.Component]struct{}),
		agg:      newAggregator(),
	}
}

func (s *session) syncScene(sc *scene.Scene) SyncStatus {
	status := StatusNone
	for _, n := range sc.Nodes() {
		status |= s.syncNode(n)
	}
	return status
}

func (s *session) syncNode(n *scene.Node) SyncStatus {
	s.agg.touchNode(n)

	status := StatusNone
	for _, c := range n.Components() {
		status |= s.syncComponent(c)
	}
	return status
}

func (s *session) syncComponent(c scene.Component) SyncStatus {
	if c == nil {
		return StatusSkip
	}
	if _, busy := s.inFlight[c]; busy {
		return StatusSkip
	}

	meta := s.engine.cache.GetOrBuild(reflect.TypeOf(c))
	status, first := s.agg.touchType(meta)
	if first {
		for _, item := range meta.Messages {
			s.log(item)
		}
	}
	if !meta.IsSyncable() {
		return status | StatusSkip
	}

	s.inFlight[c] = struct{}{}
	defer delete(s.inFlight, c)

	s.agg.touchNode(c.Node())
	s.agg.stats.Components++

	if !meta.HasMutableFields() {
		status |= s.runCallbacks(c, meta)
		return status | StatusComplete
	}

	watch := s.engine.watcher.Watch(c, meta)
	defer watch.Release()

	value := reflect.ValueOf(c).Elem()
	for i := range meta.Fields {
		fd := &meta.Fields[i]
		fs := fieldSync{
			s:     s,
			meta:  meta,
			self:  c,
			node:  c.Node(),
			fd:    fd,
			field: value.FieldByIndex(fd.Index),
		}
		if fs.node == nil {
			status |= fs.error("component is not attached to a node")
			continue
		}
		status |= fs.run()
		s.agg.stats.Fields++
	}

	status |= s.runCallbacks(c, meta)

	if watch.IsObjectModified() {
		c.SetDirty()
		s.agg.stats.Modified++
		status |= StatusModified
	}

	return status | StatusComplete
}

func (s *session) runCallbacks(c scene.Component, meta *TypeMetadata) SyncStatus {
	status := StatusNone
	v := reflect.ValueOf(c)
	for _, cb := range meta.Callbacks {
		status |= s.invoke(c, v, meta, cb)
	}
	return status
}

func (s *session) invoke(c scene.Component, v reflect.Value, meta *TypeMetadata, cb Callback) (status SyncStatus) {
	defer func() {
		if r := recover(); r != nil {
			status |= s.report(meta, c.Node(), SeverityError, cb.Name, CallbackPrefix, fmt.Sprintf("callback panicked: %v", r), nil)
		}
	}()

	s.agg.stats.Callbacks++
	out := v.Method(cb.Index).Call(nil)
	if cb.ReturnsError && !out[0].IsNil() {
		err := out[0].Interface().(error)
		return s.report(meta, c.Node(), SeverityError, cb.Name, CallbackPrefix, fmt.Sprintf("callback failed: %v", err), nil)
	}
	return StatusNone
}

// report records a sync-time diagnostic and logs it.
func (s *session) report(meta *TypeMetadata, node *scene.Node, severity Severity, member, annotation, message string, suggestions []string) SyncStatus {
	item := newLogItem(meta.Type, severity, member, annotation, message)
	item.Node = nodePath(node)
	item.Suggestions = suggestions

	s.log(item)
	return s.agg.add(meta.Type, item)
}

func (s *session) log(item LogItem) {
	fields := []zap.Field{
		zap.String("owner", item.Owner()),
		zap.String("member", item.Member),
		zap.String("annotation", item.Annotation),
	}
	if item.Node != "" {
		fields = append(fields, zap.String("node", item.Node))
	}
	if len(item.Suggestions) > 0 {
		fields = append(fields, zap.Strings("suggestions", item.Suggestions))
	}
	if item.Severity == SeverityError {
		s.engine.logger.Error(item.Message, fields...)
	} else {
		s.engine.logger.Warn(item.Message, fields...)
	}
}
