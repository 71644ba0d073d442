package agent

// MsgGreeting is the canned answer for greeting-classified queries. It is
// returned without touching retrieval or generation.
const MsgGreeting = `Hello! I am your Agri-Intelligence Assistant.

I can help you with:
- **Real-time Crop Prices**
- **Weather & Market Trends**
- **Social Sentiment Analysis**

What would you like to know?`
