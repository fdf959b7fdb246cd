// Package logger provee el logger estructurado (zap) de LifeLine.
//
// Uso:
//
//	logger.Init(logger.Config{Env: "prod", Level: "info"})
//	defer logger.Sync()
//
//	log := logger.From(ctx).With(logger.Component("chat"), logger.Op("Send"))
//	log.Info("message appended", logger.Count(1))
//
// El logger es un singleton; los middlewares inyectan una versión "scoped"
// con request_id en el contexto y las capas inferiores la recuperan con
// From(ctx).
package logger
