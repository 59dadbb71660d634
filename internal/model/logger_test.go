package model

import "testing"

func TestDiscardLoggerWorksAsIntended(t *testing.T) {
	logger := DiscardLogger
	logger.Debug("foo")
	logger.Debugf("%s", "foo")
	logger.Info("foo")
	logger.Infof("%s", "foo")
	logger.Warn("foo")
	logger.Warnf("%s", "foo")
}

func TestValidLoggerOrDefault(t *testing.T) {
	t.Run("with a nil logger", func(t *testing.T) {
		if ValidLoggerOrDefault(nil) != DiscardLogger {
			t.Fatal("expected the discard logger")
		}
	})

	t.Run("with a non-nil logger", func(t *testing.T) {
		logger := logDiscarder{}
		if ValidLoggerOrDefault(logger) != logger {
			t.Fatal("expected the logger we passed")
		}
	})
}
