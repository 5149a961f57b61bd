package client

// OnlineTransports reports how many dedicated online transports are open.
func (c *Client) OnlineTransports() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.onlineTransports)
}
