package gateway

func (g *Gateway) runJobs() {
	g.scheduler.Every(5).Minute().SingletonMode().Do(g.refreshRegistry)
	g.scheduler.Every(1).Minute().SingletonMode().Do(g.market.warmWatchlist)

	g.scheduler.StartAsync()
}

func (g *Gateway) refreshRegistry() {
	g.registry.Refresh(g.api)
}
