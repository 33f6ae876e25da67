package conf

type Bootstrap struct {
	Server   *Server
	Verifier *Verifier
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Verifier struct {
	Backend     *Backend     `json:"backend"`
	Page        *Page        `json:"page"`
	Defaults    *Defaults    `json:"defaults"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type Backend struct {
	Endpoint string `json:"endpoint"`
	Timeout  int32  `json:"timeout"`
}

type Page struct {
	Extractor string `json:"extractor"`
	Timeout   int32  `json:"timeout"`
	UserAgent string `json:"user_agent"`
}

type Defaults struct {
	Mode     string `json:"mode"`
	Language string `json:"language"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}
