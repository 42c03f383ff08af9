package conf

type Bootstrap struct {
	Server    *Server
	Data      *Data
	Auth      *Auth
	Assistant *Assistant
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
	// Public base used to build absolute file URLs for uploaded audio.
	BaseUrl string `json:"base_url"`
}

type Auth struct {
	JwtKey string `json:"jwt_key"`
}

type Data struct {
	Database *Database
	Redis    *Redis
}

type Database struct {
	Driver string
	Source string
}

type Redis struct {
	Addr     string
	Password string
	Db       int32 `json:"db"`
	// Summary cache TTL, e.g. "24h". Empty keeps entries forever.
	Ttl string `json:"ttl"`
}

type Assistant struct {
	Llm       *LLM    `json:"llm"`
	Search    *Search `json:"search"`
	Speech    *Speech `json:"speech"`
	Tagger    *Tagger `json:"tagger"`
	Log       *Log    `json:"log"`
	Locations string  `json:"locations"`
	Static    *Static `json:"static"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	Qps     int32  `json:"qps"`
	Rpm     int32  `json:"rpm"`
}

type Search struct {
	Provider string `json:"provider"`
	Naver    *Naver `json:"naver"`
}

type Naver struct {
	ClientId     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type Speech struct {
	Stt *STT `json:"stt"`
	Tts *TTS `json:"tts"`
}

type STT struct {
	DomainId     string `json:"domain_id"`
	InvokeSecret string `json:"invoke_secret"`
	ApiKey       string `json:"api_key"`
}

type TTS struct {
	ClientId     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Speaker      string `json:"speaker"`
}

type Tagger struct {
	// Remote POS tagger endpoint. Empty disables remote tagging.
	Url string `json:"url"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Static struct {
	UploadDir string `json:"upload_dir"`
	TtsDir    string `json:"tts_dir"`
}
